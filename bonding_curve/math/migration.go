package math

import (
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/shopspring/decimal"
)

// IsMigrationTriggered reports whether a settled buy has crossed OmegaM on a
// pool that is still trading on the curve.
func IsMigrationTriggered(pool *shared.BoundPool) (bool, error) {
	if pool.PoolMigration || pool.Locked {
		return false, nil
	}
	sold, err := pool.Sold()
	if err != nil {
		return false, err
	}
	return sold >= pool.Config.OmegaM, nil
}

// LockForMigration moves a pool from the curve into pending migration.
func LockForMigration(pool *shared.BoundPool) (bool, error) {
	triggered, err := IsMigrationTriggered(pool)
	if err != nil || !triggered {
		return false, err
	}
	pool.Locked = true
	return true, nil
}

// CheckMigratable validates that pool may hand its liquidity over.
func CheckMigratable(pool *shared.BoundPool) error {
	if pool.PoolMigration {
		return shared.ErrAlreadyMigrated
	}
	sold, err := pool.Sold()
	if err != nil {
		return err
	}
	if sold < pool.Config.OmegaM {
		return shared.ErrThresholdNotReached
	}
	if pool.MemeReserve.Tokens == 0 {
		return shared.ErrPoolLocked
	}
	return nil
}

// GetMigrationLiquidity splits both reserves into the destination share and
// the residual kept by the curve.
func GetMigrationLiquidity(memeReserve, quoteReserve uint64) (shared.MigrationLiquidity, error) {
	memeOut, err := splitReserve(memeReserve)
	if err != nil {
		return shared.MigrationLiquidity{}, err
	}
	quoteOut, err := splitReserve(quoteReserve)
	if err != nil {
		return shared.MigrationLiquidity{}, err
	}
	return shared.MigrationLiquidity{
		MemeToDestination:  memeOut,
		QuoteToDestination: quoteOut,
		MemeResidual:       memeReserve - memeOut,
		QuoteResidual:      quoteReserve - quoteOut,
	}, nil
}

func splitReserve(reserve uint64) (uint64, error) {
	v, err := MulDiv(u64(reserve), big.NewInt(shared.MigrationLiquidityBps), big.NewInt(shared.MaxBasisPoint), shared.RoundingDown)
	if err != nil {
		return 0, err
	}
	return ToU64(v)
}

// ApplyMigration books a completed handoff into pool.
func ApplyMigration(pool *shared.BoundPool, liquidity shared.MigrationLiquidity, destination solanago.PublicKey) error {
	if pool.PoolMigration {
		return shared.ErrAlreadyMigrated
	}
	meme, err := SubU64(pool.MemeReserve.Tokens, liquidity.MemeToDestination)
	if err != nil {
		return err
	}
	quote, err := SubU64(pool.QuoteReserve.Tokens, liquidity.QuoteToDestination)
	if err != nil {
		return err
	}
	pool.MemeReserve.Tokens = meme
	pool.QuoteReserve.Tokens = quote
	pool.Locked = true
	pool.PoolMigration = true
	pool.MigrationPoolKey = destination
	return nil
}

// GetMigrationProgress returns sold / OmegaM, capped at one.
func GetMigrationProgress(pool *shared.BoundPool) (decimal.Decimal, error) {
	if pool.Config.OmegaM == 0 {
		return decimal.NewFromInt(1), nil
	}
	sold, err := pool.Sold()
	if err != nil {
		return decimal.Zero, err
	}
	progress := decimal.NewFromBigInt(u64(sold), 0).Div(decimal.NewFromBigInt(u64(pool.Config.OmegaM), 0))
	if progress.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1), nil
	}
	return progress, nil
}
