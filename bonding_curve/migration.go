package bonding_curve

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/helpers"
	"github.com/krazyTry/launchpad-go/bonding_curve/math"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/cpamm"
	"github.com/krazyTry/launchpad-go/events"
	"github.com/krazyTry/launchpad-go/runtime"
	"go.uber.org/zap"
)

type MigrationService struct {
	*LaunchpadProgram
	State *StateService
}

func NewMigrationService(program *LaunchpadProgram) *MigrationService {
	return &MigrationService{
		LaunchpadProgram: program,
		State:            NewStateService(program),
	}
}

// Migrate hands 95% of both reserves to a new constant-product pool. The pool
// creation, the transfers and the record update commit together or not at all.
func (s *MigrationService) Migrate(ctx context.Context, params MigrateParams) (*MigrateResult, error) {
	if s.Destination == nil {
		return nil, fmt.Errorf("%w: no destination amm configured", shared.ErrCreationFailure)
	}
	current, err := s.loadPool(ctx, params.Pool)
	if err != nil {
		return nil, err
	}
	if err := math.CheckMigratable(current); err != nil {
		return nil, err
	}
	authority, err := helpers.PoolSignerAuthority(params.Pool)
	if err != nil {
		return nil, err
	}
	config := params.Config
	if config.IsZero() {
		config = s.DestinationConfig
	}

	// amounts are filled in once the reserves are read under lock
	create := cpamm.CreatePoolParams{
		Config:    config,
		Creator:   current.CreatorAddr,
		Authority: authority,
	}
	create.TokenAMint, _, create.TokenBMint, _ = helpers.SortPair(current.MemeReserve.Mint, 0, current.QuoteReserve.Mint, 0)
	// the destination rejects any other order with ErrNotCanonicalOrder
	if create.TokenAMint.Equals(current.MemeReserve.Mint) {
		create.SourceA, create.SourceB = current.MemeReserve.Vault, current.QuoteReserve.Vault
	} else {
		create.SourceA, create.SourceB = current.QuoteReserve.Vault, current.MemeReserve.Vault
	}

	adapterKeys, err := s.Destination.Accounts(create)
	if err != nil {
		return nil, destinationError(err)
	}
	keys := append([]solanago.PublicKey{params.Pool, current.MemeReserve.Vault, current.QuoteReserve.Vault}, adapterKeys...)

	result := &MigrateResult{Pool: params.Pool, TokenAMint: create.TokenAMint, TokenBMint: create.TokenBMint}
	var reserves BoundPool
	err = s.Runtime.Execute(ctx, keys, func(tx *runtime.Tx) error {
		pool, err := s.loadPoolTx(tx, params.Pool)
		if err != nil {
			return err
		}
		if err := math.CheckMigratable(pool); err != nil {
			return err
		}
		liquidity, err := math.GetMigrationLiquidity(pool.MemeReserve.Tokens, pool.QuoteReserve.Tokens)
		if err != nil {
			return err
		}

		seed := create
		_, seed.TokenAAmount, _, seed.TokenBAmount = helpers.SortPair(
			pool.MemeReserve.Mint, liquidity.MemeToDestination,
			pool.QuoteReserve.Mint, liquidity.QuoteToDestination,
		)
		destination, err := s.Destination.CreatePool(tx.Context(), tx, seed)
		if err != nil {
			return destinationError(err)
		}

		if err := math.ApplyMigration(pool, liquidity, destination); err != nil {
			return err
		}
		if err := s.storePoolTx(tx, params.Pool, pool); err != nil {
			return err
		}
		result.Destination = destination
		result.TokenAAmount, result.TokenBAmount = seed.TokenAAmount, seed.TokenBAmount
		result.Liquidity = liquidity
		reserves = *pool
		return nil
	})
	if err != nil {
		s.Logger.Warn("migration failed", zap.Stringer("pool", params.Pool), zap.Error(err))
		return nil, err
	}

	s.Logger.Info("pool migrated",
		zap.Stringer("pool", params.Pool),
		zap.Stringer("destination", result.Destination),
		zap.Uint64("memeMigrated", result.Liquidity.MemeToDestination),
		zap.Uint64("quoteMigrated", result.Liquidity.QuoteToDestination),
		zap.Uint64("memeResidual", result.Liquidity.MemeResidual),
		zap.Uint64("quoteResidual", result.Liquidity.QuoteResidual),
	)
	s.emit(ctx, events.Event{
		Kind:         events.KindMigrated,
		Pool:         params.Pool,
		AmountIn:     result.Liquidity.MemeToDestination,
		AmountOut:    result.Liquidity.QuoteToDestination,
		MemeReserve:  reserves.MemeReserve.Tokens,
		QuoteReserve: reserves.QuoteReserve.Tokens,
		Destination:  result.Destination,
	})
	return result, nil
}

func destinationError(err error) error {
	if errors.Is(err, cpamm.ErrNotCanonicalOrder) {
		return fmt.Errorf("%w: %w", shared.ErrOrderingViolation, err)
	}
	return fmt.Errorf("%w: %w", shared.ErrCreationFailure, err)
}
