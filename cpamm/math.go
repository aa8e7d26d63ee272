package cpamm

import (
	"fmt"
	"math/big"
)

// GetInitialLiquidity L = sqrt(a * b)
func GetInitialLiquidity(amountA, amountB uint64) *big.Int {
	product := new(big.Int).Mul(new(big.Int).SetUint64(amountA), new(big.Int).SetUint64(amountB))
	return new(big.Int).Sqrt(product)
}

// GetInitialSqrtPrice √P = sqrt(b / a) in Q64.64
func GetInitialSqrtPrice(amountA, amountB uint64) (*big.Int, error) {
	if amountA == 0 {
		return nil, ErrZeroLiquidity
	}
	num := new(big.Int).Lsh(new(big.Int).SetUint64(amountB), ScaleOffset*2)
	num.Quo(num, new(big.Int).SetUint64(amountA))
	return num.Sqrt(num), nil
}

// GetAmountOut prices amountIn against reserves with x * y = k, rounding down.
func GetAmountOut(reserveIn, reserveOut, amountIn uint64, feeNumerator uint64) (amountOut uint64, fee uint64, err error) {
	if reserveIn == 0 || reserveOut == 0 {
		return 0, 0, ErrZeroLiquidity
	}
	if feeNumerator >= FeeDenominator {
		return 0, 0, fmt.Errorf("%w: fee numerator %d", ErrInvalidParams, feeNumerator)
	}

	// fee rounds up
	feeBig := new(big.Int).Mul(new(big.Int).SetUint64(amountIn), new(big.Int).SetUint64(feeNumerator))
	feeBig.Add(feeBig, big.NewInt(FeeDenominator-1))
	feeBig.Quo(feeBig, big.NewInt(FeeDenominator))
	fee = feeBig.Uint64()
	net := amountIn - fee

	numerator := new(big.Int).Mul(new(big.Int).SetUint64(reserveOut), new(big.Int).SetUint64(net))
	denominator := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(net))
	out := numerator.Quo(numerator, denominator)
	return out.Uint64(), fee, nil
}
