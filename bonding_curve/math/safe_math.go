package math

import (
	"math/big"

	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
)

func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, shared.ArithmeticFault("subtraction overflow")
	}
	return new(big.Int).Sub(a, b), nil
}

func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, shared.ArithmeticFault("division by zero")
	}
	return new(big.Int).Div(a, b), nil
}

// ToU64 narrows v, failing instead of truncating.
func ToU64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 {
		return 0, shared.ArithmeticFault("negative result")
	}
	if v.Cmp(shared.U64Max) > 0 {
		return 0, shared.ArithmeticFault("u64 overflow")
	}
	return v.Uint64(), nil
}

func AddU64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, shared.ArithmeticFault("u64 addition overflow")
	}
	return sum, nil
}

func SubU64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, shared.ArithmeticFault("u64 subtraction underflow")
	}
	return a - b, nil
}

func u64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}
