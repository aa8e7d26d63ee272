package math

import (
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
)

// SwapAmounts prices a trade on the reference curve. limitValue belongs to
// the caller's slippage policy and is not enforced here.
func SwapAmounts(pool *shared.BoundPool, coinInAmount, limitValue uint64, direction shared.TradeDirection) (shared.SwapAmount, error) {
	return GetSwapAmount(pool, LinearCurveFactory, coinInAmount, direction)
}

// GetSwapAmount splits coinInAmount into net input and input fee, prices the
// net input on the curve built by factory, and splits the gross output into
// trader output and output fee.
func GetSwapAmount(pool *shared.BoundPool, factory CurveFactory, coinInAmount uint64, direction shared.TradeDirection) (shared.SwapAmount, error) {
	if coinInAmount == 0 {
		return shared.SwapAmount{}, shared.ErrZeroAmount
	}
	if pool.Locked {
		return shared.SwapAmount{}, shared.ErrPoolLocked
	}
	if factory == nil {
		factory = LinearCurveFactory
	}

	curve, err := factory(pool.Config)
	if err != nil {
		return shared.SwapAmount{}, err
	}
	sold, err := pool.Sold()
	if err != nil {
		return shared.SwapAmount{}, err
	}

	feeInPercent, feeOutPercent := GetFeePercents(pool.Fees, direction)
	amountIn, adminFeeIn, err := GetExcludedFeeAmount(feeInPercent, coinInAmount)
	if err != nil {
		return shared.SwapAmount{}, err
	}

	var grossOut, outReserve uint64
	switch direction {
	case shared.TradeDirectionQuoteToMeme:
		grossOut, err = curve.BuyOutput(sold, amountIn)
		outReserve = pool.MemeReserve.Tokens
	case shared.TradeDirectionMemeToQuote:
		// the whole input, fee included, goes back to the meme reserve
		if coinInAmount > sold {
			return shared.SwapAmount{}, shared.ArithmeticFault("sell exceeds sold supply")
		}
		grossOut, err = curve.SellOutput(sold, amountIn)
		outReserve = pool.QuoteReserve.Tokens
	default:
		return shared.SwapAmount{}, shared.ArithmeticFault("unknown trade direction")
	}
	if err != nil {
		return shared.SwapAmount{}, err
	}
	if grossOut > outReserve {
		return shared.SwapAmount{}, shared.ArithmeticFault("output exceeds reserve")
	}

	amountOut, adminFeeOut, err := GetExcludedFeeAmount(feeOutPercent, grossOut)
	if err != nil {
		return shared.SwapAmount{}, err
	}

	return shared.SwapAmount{
		AmountIn:    amountIn,
		AmountOut:   amountOut,
		AdminFeeIn:  adminFeeIn,
		AdminFeeOut: adminFeeOut,
	}, nil
}

// CheckSlippage enforces the caller's minimum output.
func CheckSlippage(amount shared.SwapAmount, minAmountOut uint64) error {
	if amount.AmountOut < minAmountOut {
		return shared.ErrSlippageExceeded
	}
	return nil
}

// GetMinimumAmountOut applies slippageBps to a quoted output.
func GetMinimumAmountOut(amountOut uint64, slippageBps uint16) uint64 {
	if slippageBps == 0 {
		return amountOut
	}
	if slippageBps >= shared.MaxBasisPoint {
		return 0
	}
	v, err := MulDiv(u64(amountOut), u64(uint64(shared.MaxBasisPoint-slippageBps)), u64(shared.MaxBasisPoint), shared.RoundingDown)
	if err != nil {
		return 0
	}
	return v.Uint64()
}
