package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Pow10 returns 10^n exactly.
func Pow10(n int32) decimal.Decimal {
	return decimal.New(1, n)
}

// PriceFromSqrtPrice converts a Q64.64 sqrt price of token B per token A into
// a UI price, adjusting for the decimals of both tokens.
func PriceFromSqrtPrice(sqrtPrice *big.Int, decimalsA, decimalsB uint8) decimal.Decimal {
	sq := decimal.NewFromBigInt(sqrtPrice, 0)
	q64 := decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 64), 0)
	root := sq.DivRound(q64, 40)
	return root.Mul(root).Mul(Pow10(int32(decimalsA) - int32(decimalsB)))
}
