package decimal_math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceFromSqrtPrice(t *testing.T) {
	// sqrt(4) in Q64.64
	sqrtPrice := new(big.Int).Lsh(big.NewInt(2), 64)

	assert.Equal(t, "4", PriceFromSqrtPrice(sqrtPrice, 0, 0).String())
	assert.Equal(t, "4000", PriceFromSqrtPrice(sqrtPrice, 9, 6).String())
	assert.Equal(t, "0.004", PriceFromSqrtPrice(sqrtPrice, 6, 9).String())
	assert.True(t, PriceFromSqrtPrice(big.NewInt(0), 0, 0).IsZero())
}

func TestPow10(t *testing.T) {
	assert.Equal(t, "1000", Pow10(3).String())
	assert.Equal(t, "0.01", Pow10(-2).String())
}
