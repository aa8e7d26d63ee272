package helpers

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/runtime"
)

var seed = struct {
	Pool         []byte
	PoolSigner   []byte
	MemeVault    []byte
	QuoteVault   []byte
	FeeVault     []byte
	TargetConfig []byte
}{
	Pool:         []byte("bound_pool"),
	PoolSigner:   []byte("signer"),
	MemeVault:    []byte("meme_vault"),
	QuoteVault:   []byte("quote_vault"),
	FeeVault:     []byte("fee_vault"),
	TargetConfig: []byte("config"),
}

func DerivePoolAddress(memeMint, quoteMint solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{
		seed.Pool,
		memeMint.Bytes(),
		quoteMint.Bytes(),
	}, LaunchpadProgramID)
	return pub
}

// DerivePoolSigner is the address that owns both pool vaults.
func DerivePoolSigner(pool solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.PoolSigner, pool.Bytes()}, LaunchpadProgramID)
	return pub
}

// PoolSignerAuthority is the capability the pool uses to pay out of its vaults.
func PoolSignerAuthority(pool solanago.PublicKey) (runtime.Authority, error) {
	return runtime.ProgramAuthority(LaunchpadProgramID, seed.PoolSigner, pool.Bytes())
}

func DeriveMemeVaultAddress(pool solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.MemeVault, pool.Bytes()}, LaunchpadProgramID)
	return pub
}

func DeriveQuoteVaultAddress(pool solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.QuoteVault, pool.Bytes()}, LaunchpadProgramID)
	return pub
}

func DeriveFeeVaultAddress(pool solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.FeeVault, pool.Bytes()}, LaunchpadProgramID)
	return pub
}

func DeriveTargetConfigAddress(tokenMint, pairTokenMint solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{
		seed.TargetConfig,
		tokenMint.Bytes(),
		pairTokenMint.Bytes(),
	}, LaunchpadProgramID)
	return pub
}
