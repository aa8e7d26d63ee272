package u128

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
)

var ErrOverflow = errors.New("value overflows Uint128")

// FromBig packs v into a little endian Uint128.
func FromBig(v *big.Int) (bin.Uint128, error) {
	if v.Sign() < 0 {
		return bin.Uint128{}, fmt.Errorf("%w: %s is negative", ErrOverflow, v)
	}
	if v.BitLen() > 128 {
		return bin.Uint128{}, fmt.Errorf("%w: %s", ErrOverflow, v)
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	return bin.Uint128{
		Lo:         new(big.Int).And(v, mask).Uint64(),
		Hi:         new(big.Int).Rsh(v, 64).Uint64(),
		Endianness: binary.LittleEndian,
	}, nil
}
