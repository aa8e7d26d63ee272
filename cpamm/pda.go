package cpamm

import (
	"bytes"
	"encoding/binary"

	solanago "github.com/gagliardetto/solana-go"
)

// DeriveConfigAddress returns the fee config account for index.
func DeriveConfigAddress(index uint64) (solanago.PublicKey, error) {
	indexBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(indexBytes, index)

	pda, _, err := solanago.FindProgramAddress([][]byte{[]byte("config"), indexBytes}, ProgramID)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	return pda, nil
}

// DerivePoolAddress is independent of the order the mints are passed in.
func DerivePoolAddress(config, mintA, mintB solanago.PublicKey) (solanago.PublicKey, error) {
	if bytes.Compare(mintA.Bytes(), mintB.Bytes()) > 0 {
		mintA, mintB = mintB, mintA
	}
	seeds := [][]byte{[]byte("pool"), config.Bytes(), mintA.Bytes(), mintB.Bytes()}

	address, _, err := solanago.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	return address, nil
}

func DerivePoolAuthority() (solanago.PublicKey, error) {
	address, _, err := solanago.FindProgramAddress([][]byte{[]byte("pool_authority")}, ProgramID)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	return address, nil
}

func DeriveTokenVaultAddress(tokenMint, pool solanago.PublicKey) (solanago.PublicKey, error) {
	pda, _, err := solanago.FindProgramAddress([][]byte{[]byte("token_vault"), tokenMint.Bytes(), pool.Bytes()}, ProgramID)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	return pda, nil
}
