package math

import (
	"math/big"

	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
)

func MulDiv(x, y, denominator *big.Int, rounding shared.Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, shared.ArithmeticFault("MulDiv: division by zero")
	}
	prod := new(big.Int).Mul(x, y)
	if rounding == shared.RoundingUp {
		numerator := new(big.Int).Add(prod, new(big.Int).Sub(denominator, big.NewInt(1)))
		return new(big.Int).Div(numerator, denominator), nil
	}
	return new(big.Int).Div(prod, denominator), nil
}

// Sqrt returns floor(sqrt(value)).
func Sqrt(value *big.Int) *big.Int {
	if value.Sign() <= 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Sqrt(value)
}
