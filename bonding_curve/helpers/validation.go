package helpers

import (
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/math"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
)

func ValidateFees(fees shared.Fees) error {
	if fees.FeeMemePercent > shared.FeePrecision {
		return fmt.Errorf("%w: meme fee %d above precision %d", shared.ErrInvalidConfig, fees.FeeMemePercent, shared.FeePrecision)
	}
	if fees.FeeQuotePercent > shared.FeePrecision {
		return fmt.Errorf("%w: quote fee %d above precision %d", shared.ErrInvalidConfig, fees.FeeQuotePercent, shared.FeePrecision)
	}
	return nil
}

func ValidateConfig(config shared.Config) error {
	switch {
	case config.PriceFactorDenom == 0:
		return fmt.Errorf("%w: price factor denominator is zero", shared.ErrInvalidConfig)
	case config.PriceFactorNum == 0:
		return fmt.Errorf("%w: price factor numerator is zero", shared.ErrInvalidConfig)
	case config.AlphaAbs == 0 && config.Beta == 0:
		return fmt.Errorf("%w: curve has no price", shared.ErrInvalidConfig)
	case config.Decimals.Alpha == 0 || config.Decimals.Beta == 0 || config.Decimals.Quote == 0:
		return fmt.Errorf("%w: decimal scales must be non-zero", shared.ErrInvalidConfig)
	case config.GammaM == 0:
		return fmt.Errorf("%w: meme supply is zero", shared.ErrInvalidConfig)
	case config.OmegaM == 0 || config.OmegaM > config.GammaM:
		return fmt.Errorf("%w: migration threshold %d outside (0, %d]", shared.ErrInvalidConfig, config.OmegaM, config.GammaM)
	}
	return nil
}

func ValidateMints(memeMint, quoteMint solanago.PublicKey) error {
	if memeMint.IsZero() || quoteMint.IsZero() {
		return fmt.Errorf("%w: empty mint", shared.ErrInvalidConfig)
	}
	if memeMint.Equals(quoteMint) {
		return fmt.Errorf("%w: meme and quote mint are the same", shared.ErrMintMismatch)
	}
	return nil
}

// DefaultMigrationThreshold returns the canonical share of supply that must be sold.
func DefaultMigrationThreshold(supply uint64) uint64 {
	// the quotient never exceeds supply and the denominator is non-zero
	v, _ := math.MulDiv(new(big.Int).SetUint64(supply), big.NewInt(shared.MigrationThresholdPercent), big.NewInt(100), shared.RoundingDown)
	return v.Uint64()
}
