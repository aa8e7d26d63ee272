package helpers

import (
	"bytes"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/shopspring/decimal"
)

// GetFirstKey returns the lexicographically smaller key.
func GetFirstKey(key1, key2 solanago.PublicKey) solanago.PublicKey {
	if bytes.Compare(key1.Bytes(), key2.Bytes()) > 0 {
		return key2
	}
	return key1
}

// GetSecondKey returns the lexicographically larger key.
func GetSecondKey(key1, key2 solanago.PublicKey) solanago.PublicKey {
	if bytes.Compare(key1.Bytes(), key2.Bytes()) > 0 {
		return key1
	}
	return key2
}

// IsCanonicalOrder reports whether a sorts strictly before b.
func IsCanonicalOrder(a, b solanago.PublicKey) bool {
	return bytes.Compare(a.Bytes(), b.Bytes()) < 0
}

// SortPair orders (mintA, amountA) and (mintB, amountB) lower mint first.
func SortPair(mintA solanago.PublicKey, amountA uint64, mintB solanago.PublicKey, amountB uint64) (solanago.PublicKey, uint64, solanago.PublicKey, uint64) {
	if IsCanonicalOrder(mintA, mintB) {
		return mintA, amountA, mintB, amountB
	}
	return mintB, amountB, mintA, amountA
}

// ToLamports converts a UI amount into base units for the given decimals.
func ToLamports(amount decimal.Decimal, decimals uint8) (uint64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", amount)
	}
	scaled := amount.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimals", amount, decimals)
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("amount %s overflows u64", amount)
	}
	return bi.Uint64(), nil
}

func FromLamports(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-int32(decimals))
}

// DecimalsFromScale maps a scale such as 1_000_000 back to its exponent.
func DecimalsFromScale(scale uint64) (uint8, error) {
	if scale == 0 {
		return 0, fmt.Errorf("zero decimal scale")
	}
	var d uint8
	for scale > 1 {
		if scale%10 != 0 {
			return 0, fmt.Errorf("decimal scale %d is not a power of ten", scale)
		}
		scale /= 10
		d++
	}
	return d, nil
}

// MaxDecimals is the largest exponent whose power of ten fits in a u64.
const MaxDecimals = 19

// ScaleFromDecimals returns 10^decimals.
func ScaleFromDecimals(decimals uint8) (uint64, error) {
	if decimals > MaxDecimals {
		return 0, fmt.Errorf("%w: %d decimals overflow a u64 scale", shared.ErrInvalidConfig, decimals)
	}
	scale := uint64(1)
	for i := uint8(0); i < decimals; i++ {
		scale *= 10
	}
	return scale, nil
}
