package math

import (
	"math/big"

	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
)

// GetExcludedFeeAmount splits includedFeeAmount into the tradable part and
// the fee. The fee rounds up.
func GetExcludedFeeAmount(feePercent, includedFeeAmount uint64) (excluded uint64, fee uint64, err error) {
	if feePercent > shared.FeePrecision {
		return 0, 0, shared.ArithmeticFault("fee above precision")
	}
	tradingFee, err := MulDiv(u64(includedFeeAmount), u64(feePercent), big.NewInt(shared.FeePrecision), shared.RoundingUp)
	if err != nil {
		return 0, 0, err
	}
	fee, err = ToU64(tradingFee)
	if err != nil {
		return 0, 0, err
	}
	excluded, err = SubU64(includedFeeAmount, fee)
	if err != nil {
		return 0, 0, err
	}
	return excluded, fee, nil
}

// GetFeePercents returns the input and output leg rates for a trade.
func GetFeePercents(fees shared.Fees, direction shared.TradeDirection) (in uint64, out uint64) {
	if direction == shared.TradeDirectionQuoteToMeme {
		return fees.FeeQuotePercent, fees.FeeMemePercent
	}
	return fees.FeeMemePercent, fees.FeeQuotePercent
}

func PercentToBps(percent uint64) uint64 {
	return percent * shared.MaxBasisPoint / shared.FeePrecision
}

func BpsToPercent(bps uint64) uint64 {
	return bps * (shared.FeePrecision / shared.MaxBasisPoint)
}
