package cpamm

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/decimal_math"
	"github.com/krazyTry/launchpad-go/runtime"
	"github.com/shopspring/decimal"
)

// Pool is the persisted constant-product pool record.
type Pool struct {
	Config       solanago.PublicKey
	Creator      solanago.PublicKey
	TokenAMint   solanago.PublicKey
	TokenBMint   solanago.PublicKey
	TokenAVault  solanago.PublicKey
	TokenBVault  solanago.PublicKey
	TokenAAmount uint64
	TokenBAmount uint64
	Liquidity    bin.Uint128
	SqrtPrice    bin.Uint128
}

// Price is the UI price of token A in token B at creation.
func (p *Pool) Price(decimalsA, decimalsB uint8) decimal.Decimal {
	return decimal_math.PriceFromSqrtPrice(p.SqrtPrice.BigInt(), decimalsA, decimalsB)
}

// CreatePoolParams describes a pool seeded with liquidity pulled from two source
// accounts. TokenAMint must sort before TokenBMint.
type CreatePoolParams struct {
	Config       solanago.PublicKey
	Creator      solanago.PublicKey
	TokenAMint   solanago.PublicKey
	TokenBMint   solanago.PublicKey
	TokenAAmount uint64
	TokenBAmount uint64
	SourceA      solanago.PublicKey
	SourceB      solanago.PublicKey
	Authority    runtime.Authority
}

// Validate runs before any balance moves.
func (p CreatePoolParams) Validate() error {
	if p.TokenAMint.IsZero() || p.TokenBMint.IsZero() {
		return fmt.Errorf("%w: empty mint", ErrInvalidParams)
	}
	if bytes.Compare(p.TokenAMint.Bytes(), p.TokenBMint.Bytes()) >= 0 {
		return fmt.Errorf("%w: %s >= %s", ErrNotCanonicalOrder, p.TokenAMint, p.TokenBMint)
	}
	if p.TokenAAmount == 0 || p.TokenBAmount == 0 {
		return fmt.Errorf("%w: zero initial liquidity", ErrInvalidParams)
	}
	return nil
}

func (p *Pool) Marshal() ([]byte, error) {
	return shared.EncodeAccount(AccountKeyPool, p)
}

func ParseAccountPool(data []byte) (*Pool, error) {
	pool := new(Pool)
	if err := shared.DecodeAccount(AccountKeyPool, data, pool); err != nil {
		return nil, err
	}
	return pool, nil
}
