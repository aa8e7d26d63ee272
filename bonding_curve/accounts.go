package bonding_curve

import (
	"context"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/runtime"
	"go.uber.org/zap"
)

// AccountService manages trader token accounts on the ledger.
type AccountService struct {
	*LaunchpadProgram
}

func NewAccountService(program *LaunchpadProgram) *AccountService {
	return &AccountService{LaunchpadProgram: program}
}

// GetAssociatedTokenAccount derives the token account of owner for mint.
func GetAssociatedTokenAccount(owner, mint solanago.PublicKey) (solanago.PublicKey, error) {
	ata, _, err := solanago.FindAssociatedTokenAddress(owner, mint)
	return ata, err
}

// PrepareTokenAccount returns the associated token account of owner for mint,
// opening it when missing.
func (s *AccountService) PrepareTokenAccount(ctx context.Context, owner, mint solanago.PublicKey) (solanago.PublicKey, error) {
	ata, err := GetAssociatedTokenAccount(owner, mint)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	err = s.Runtime.Execute(ctx, []solanago.PublicKey{ata}, func(tx *runtime.Tx) error {
		exists, err := tx.AccountExists(ata)
		if err != nil || exists {
			return err
		}
		_, err = tx.CreateAccount(ata, mint, owner)
		return err
	})
	if err != nil {
		return solanago.PublicKey{}, err
	}
	return ata, nil
}

// Fund issues amount of mint to owner's associated token account.
func (s *AccountService) Fund(ctx context.Context, owner, mint solanago.PublicKey, amount uint64) (solanago.PublicKey, error) {
	ata, err := GetAssociatedTokenAccount(owner, mint)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	err = s.Runtime.Execute(ctx, []solanago.PublicKey{ata}, func(tx *runtime.Tx) error {
		exists, err := tx.AccountExists(ata)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := tx.CreateAccount(ata, mint, owner); err != nil {
				return err
			}
		}
		return tx.MintTo(ata, amount)
	})
	if err != nil {
		return solanago.PublicKey{}, err
	}
	s.Logger.Debug("funded", zap.Stringer("owner", owner), zap.Stringer("mint", mint), zap.Uint64("amount", amount))
	return ata, nil
}

// SwapAccounts prepares owner's associated token accounts for the meme and
// quote mints of pool and returns them.
func (s *AccountService) SwapAccounts(ctx context.Context, pool solanago.PublicKey, owner solanago.PublicKey) (meme, quote solanago.PublicKey, err error) {
	state, err := s.loadPool(ctx, pool)
	if err != nil {
		return solanago.PublicKey{}, solanago.PublicKey{}, err
	}
	if meme, err = s.PrepareTokenAccount(ctx, owner, state.MemeReserve.Mint); err != nil {
		return solanago.PublicKey{}, solanago.PublicKey{}, err
	}
	if quote, err = s.PrepareTokenAccount(ctx, owner, state.QuoteReserve.Mint); err != nil {
		return solanago.PublicKey{}, solanago.PublicKey{}, err
	}
	return meme, quote, nil
}
