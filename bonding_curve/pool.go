package bonding_curve

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/helpers"
	"github.com/krazyTry/launchpad-go/bonding_curve/math"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/events"
	"github.com/krazyTry/launchpad-go/runtime"
	"go.uber.org/zap"
)

type PoolService struct {
	*LaunchpadProgram
	State     *StateService
	Migration *MigrationService
}

func NewPoolService(program *LaunchpadProgram) *PoolService {
	return &PoolService{
		LaunchpadProgram: program,
		State:            NewStateService(program),
		Migration:        NewMigrationService(program),
	}
}

// NewPool creates the curve for memeMint/quoteMint, opens both vaults under the
// pool signer and mints the whole curve supply into the meme vault.
func (s *PoolService) NewPool(ctx context.Context, params NewPoolParams) (solanago.PublicKey, error) {
	if err := helpers.ValidateMints(params.MemeMint, params.QuoteMint); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := helpers.ValidateFees(params.Fees); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := helpers.ValidateConfig(params.Config); err != nil {
		return solanago.PublicKey{}, err
	}
	if _, err := s.Curve(params.Config); err != nil {
		return solanago.PublicKey{}, err
	}

	poolAddress := helpers.DerivePoolAddress(params.MemeMint, params.QuoteMint)
	signer := helpers.DerivePoolSigner(poolAddress)
	memeVault := helpers.DeriveMemeVaultAddress(poolAddress)
	quoteVault := helpers.DeriveQuoteVaultAddress(poolAddress)

	pool := &BoundPool{
		MemeReserve:   Reserve{Tokens: params.Config.GammaM, Mint: params.MemeMint, Vault: memeVault},
		QuoteReserve:  Reserve{Tokens: 0, Mint: params.QuoteMint, Vault: quoteVault},
		FeeVaultQuote: helpers.DeriveFeeVaultAddress(poolAddress),
		CreatorAddr:   params.Creator,
		Fees:          params.Fees,
		Config:        params.Config,
	}

	keys := []solanago.PublicKey{poolAddress, memeVault, quoteVault}
	err := s.Runtime.Execute(ctx, keys, func(tx *runtime.Tx) error {
		exists, err := tx.RecordExists(poolAddress)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", shared.ErrPoolExists, poolAddress)
		}
		if _, err := tx.CreateAccount(memeVault, params.MemeMint, signer); err != nil {
			return err
		}
		if _, err := tx.CreateAccount(quoteVault, params.QuoteMint, signer); err != nil {
			return err
		}
		if err := tx.MintTo(memeVault, params.Config.GammaM); err != nil {
			return err
		}
		return s.storePoolTx(tx, poolAddress, pool)
	})
	if err != nil {
		return solanago.PublicKey{}, err
	}

	s.Logger.Info("pool created",
		zap.Stringer("pool", poolAddress),
		zap.Stringer("memeMint", params.MemeMint),
		zap.Stringer("quoteMint", params.QuoteMint),
		zap.Uint64("supply", params.Config.GammaM),
		zap.Uint64("migrationThreshold", params.Config.OmegaM),
	)
	s.emit(ctx, events.Event{
		Kind:         events.KindPoolCreated,
		Pool:         poolAddress,
		Signer:       params.Creator,
		MemeReserve:  pool.MemeReserve.Tokens,
		QuoteReserve: pool.QuoteReserve.Tokens,
	})
	return poolAddress, nil
}

// QuoteForMeme buys meme with AmountIn quote.
func (s *PoolService) QuoteForMeme(ctx context.Context, params SwapParams) (*SwapResult, error) {
	return s.swap(ctx, params, shared.TradeDirectionQuoteToMeme)
}

// MemeForQuote sells AmountIn meme for quote.
func (s *PoolService) MemeForQuote(ctx context.Context, params SwapParams) (*SwapResult, error) {
	return s.swap(ctx, params, shared.TradeDirectionMemeToQuote)
}

func (s *PoolService) swap(ctx context.Context, params SwapParams, direction TradeDirection) (*SwapResult, error) {
	if params.AmountIn == 0 {
		return nil, shared.ErrZeroAmount
	}
	// vault addresses never change after creation, so they can be read before locking
	current, err := s.loadPool(ctx, params.Pool)
	if err != nil {
		return nil, err
	}
	authority, err := helpers.PoolSignerAuthority(params.Pool)
	if err != nil {
		return nil, err
	}

	var (
		result   = &SwapResult{Pool: params.Pool, Direction: direction}
		reserves BoundPool
	)
	keys := []solanago.PublicKey{
		params.Pool,
		current.MemeReserve.Vault,
		current.QuoteReserve.Vault,
		params.UserMeme,
		params.UserQuote,
	}
	err = s.Runtime.Execute(ctx, keys, func(tx *runtime.Tx) error {
		pool, err := s.loadPoolTx(tx, params.Pool)
		if err != nil {
			return err
		}
		if err := checkUserMints(tx, pool, params); err != nil {
			return err
		}

		amount, err := math.GetSwapAmount(pool, s.Curve, params.AmountIn, direction)
		if err != nil {
			return err
		}
		if err := math.CheckSlippage(amount, params.MinAmountOut); err != nil {
			return fmt.Errorf("%w: got %d, want at least %d", err, amount.AmountOut, params.MinAmountOut)
		}

		userIn, vaultIn := params.UserQuote, pool.QuoteReserve.Vault
		vaultOut, userOut := pool.MemeReserve.Vault, params.UserMeme
		if direction == shared.TradeDirectionMemeToQuote {
			userIn, vaultIn = params.UserMeme, pool.MemeReserve.Vault
			vaultOut, userOut = pool.QuoteReserve.Vault, params.UserQuote
		}
		if err := tx.Transfer(userIn, vaultIn, runtime.SignerAuthority(params.Owner), params.AmountIn); err != nil {
			return err
		}
		if err := tx.Transfer(vaultOut, userOut, authority, amount.AmountOut); err != nil {
			return err
		}

		if err := math.ApplySwap(pool, direction, amount); err != nil {
			return err
		}
		if direction == shared.TradeDirectionQuoteToMeme {
			triggered, err := math.LockForMigration(pool)
			if err != nil {
				return err
			}
			result.MigrationTriggered = triggered
		}
		if err := s.storePoolTx(tx, params.Pool, pool); err != nil {
			return err
		}
		result.SwapAmount = amount
		reserves = *pool
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("swap",
		zap.Stringer("pool", params.Pool),
		zap.Stringer("direction", direction),
		zap.Uint64("amountIn", result.AmountIn),
		zap.Uint64("amountOut", result.AmountOut),
		zap.Bool("locked", reserves.Locked),
	)
	s.emit(ctx, events.Event{
		Kind:         events.KindSwap,
		Pool:         params.Pool,
		Signer:       params.Owner,
		Direction:    direction.String(),
		AmountIn:     result.AmountIn,
		AmountOut:    result.AmountOut,
		AdminFeeIn:   result.AdminFeeIn,
		AdminFeeOut:  result.AdminFeeOut,
		MemeReserve:  reserves.MemeReserve.Tokens,
		QuoteReserve: reserves.QuoteReserve.Tokens,
	})

	if result.MigrationTriggered {
		s.emit(ctx, events.Event{
			Kind:         events.KindMigrationTriggered,
			Pool:         params.Pool,
			Signer:       params.Owner,
			MemeReserve:  reserves.MemeReserve.Tokens,
			QuoteReserve: reserves.QuoteReserve.Tokens,
		})
		if s.AutoMigrate && s.Destination != nil {
			migrated, err := s.Migration.Migrate(ctx, MigrateParams{Pool: params.Pool})
			if err != nil {
				s.Logger.Error("auto migration failed", zap.Stringer("pool", params.Pool), zap.Error(err))
			} else {
				result.Migration = migrated
			}
		}
	}
	return result, nil
}

func checkUserMints(tx *runtime.Tx, pool *BoundPool, params SwapParams) error {
	userMeme, err := tx.Account(params.UserMeme)
	if err != nil {
		return err
	}
	userQuote, err := tx.Account(params.UserQuote)
	if err != nil {
		return err
	}
	if !userMeme.Mint.Equals(pool.MemeReserve.Mint) {
		return fmt.Errorf("%w: meme account %s holds %s", shared.ErrMintMismatch, params.UserMeme, userMeme.Mint)
	}
	if !userQuote.Mint.Equals(pool.QuoteReserve.Mint) {
		return fmt.Errorf("%w: quote account %s holds %s", shared.ErrMintMismatch, params.UserQuote, userQuote.Mint)
	}
	return nil
}

// GetSwapAmount previews a trade against committed state without changing it.
func (s *PoolService) GetSwapAmount(ctx context.Context, params SwapQuoteParams) (*SwapQuoteResult, error) {
	pool, err := s.loadPool(ctx, params.Pool)
	if err != nil {
		return nil, err
	}
	amount, err := math.GetSwapAmount(pool, s.Curve, params.AmountIn, params.Direction)
	if err != nil {
		return nil, err
	}
	result := &SwapQuoteResult{
		SwapAmount:       amount,
		MinimumAmountOut: math.GetMinimumAmountOut(amount.AmountOut, params.SlippageBps),
	}
	if params.Direction == shared.TradeDirectionQuoteToMeme {
		after := *pool
		if err := math.ApplySwap(&after, params.Direction, amount); err != nil {
			return nil, err
		}
		result.WouldTriggerMigration, err = math.IsMigrationTriggered(&after)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
