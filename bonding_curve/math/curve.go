package math

import (
	"math/big"

	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
)

// Curve maps curve position (meme units sold) and trade size to the gross
// output of the trade. Implementations must be deterministic and monotone in
// the input amount.
type Curve interface {
	// BuyOutput returns the meme units released for quoteIn.
	BuyOutput(sold, quoteIn uint64) (uint64, error)
	// SellOutput returns the quote units released for memeIn.
	SellOutput(sold, memeIn uint64) (uint64, error)
}

// CurveFactory builds the curve of a pool from its config.
type CurveFactory func(config shared.Config) (Curve, error)

// LinearCurve prices the s-th meme unit at PF*(A*s+B)/Dq where
// A = AlphaAbs/Decimals.Alpha, B = Beta/Decimals.Beta and
// PF = PriceFactorNum/PriceFactorDenom.
//
// Cumulative cost is kept as the exact numerator
// N(s) = num*(a*s^2 + 2*b*s) over the shared denominator d.
type LinearCurve struct {
	num    *big.Int
	a      *big.Int
	b      *big.Int
	d      *big.Int
	gammaM uint64
}

var _ Curve = (*LinearCurve)(nil)

// LinearCurveFactory is the default CurveFactory.
func LinearCurveFactory(config shared.Config) (Curve, error) {
	c, err := NewLinearCurve(config)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func NewLinearCurve(config shared.Config) (*LinearCurve, error) {
	dec := config.Decimals
	if config.PriceFactorDenom == 0 {
		return nil, shared.ArithmeticFault("price factor denominator is zero")
	}
	if dec.Alpha == 0 || dec.Beta == 0 || dec.Quote == 0 {
		return nil, shared.ArithmeticFault("zero decimals scale")
	}
	if config.PriceFactorNum == 0 || (config.AlphaAbs == 0 && config.Beta == 0) {
		return nil, shared.ArithmeticFault("curve has zero price")
	}
	d := Mul(Mul(big.NewInt(2), u64(dec.Alpha)), u64(dec.Beta))
	d = Mul(Mul(d, u64(config.PriceFactorDenom)), u64(dec.Quote))
	return &LinearCurve{
		num:    u64(config.PriceFactorNum),
		a:      Mul(u64(config.AlphaAbs), u64(dec.Beta)),
		b:      Mul(u64(config.Beta), u64(dec.Alpha)),
		d:      d,
		gammaM: config.GammaM,
	}, nil
}

// cost returns N(s).
func (c *LinearCurve) cost(s *big.Int) *big.Int {
	quad := Mul(Mul(c.a, s), s)
	lin := Mul(Mul(big.NewInt(2), c.b), s)
	return Mul(c.num, Add(quad, lin))
}

func (c *LinearCurve) BuyOutput(sold, quoteIn uint64) (uint64, error) {
	if quoteIn == 0 {
		return 0, nil
	}
	s0 := u64(sold)
	target := Add(c.cost(s0), Mul(u64(quoteIn), c.d))

	var s1 *big.Int
	if c.a.Sign() == 0 {
		var err error
		s1, err = Div(target, Mul(Mul(big.NewInt(2), c.num), c.b))
		if err != nil {
			return 0, err
		}
	} else {
		qa := Mul(c.num, c.a)
		qb := Mul(c.num, c.b)
		disc := Add(Mul(qb, qb), Mul(qa, target))
		root, err := Sub(Sqrt(disc), qb)
		if err != nil {
			return 0, err
		}
		s1, err = Div(root, qa)
		if err != nil {
			return 0, err
		}
	}

	// integer sqrt can land one unit off the largest s with N(s) <= target
	one := big.NewInt(1)
	for c.cost(Add(s1, one)).Cmp(target) <= 0 {
		s1 = Add(s1, one)
	}
	for s1.Sign() > 0 && c.cost(s1).Cmp(target) > 0 {
		s1 = new(big.Int).Sub(s1, one)
	}

	if s1.Cmp(u64(c.gammaM)) > 0 {
		return 0, shared.ArithmeticFault("buy exceeds curve supply")
	}
	out, err := Sub(s1, s0)
	if err != nil {
		return 0, err
	}
	return ToU64(out)
}

func (c *LinearCurve) SellOutput(sold, memeIn uint64) (uint64, error) {
	if memeIn > sold {
		return 0, shared.ArithmeticFault("sell exceeds sold supply")
	}
	before := c.cost(u64(sold))
	after := c.cost(u64(sold - memeIn))
	delta, err := Sub(before, after)
	if err != nil {
		return 0, err
	}
	out, err := Div(delta, c.d)
	if err != nil {
		return 0, err
	}
	return ToU64(out)
}

// QuoteForSupply returns the quote needed to move the curve from zero to
// sold, rounded up.
func (c *LinearCurve) QuoteForSupply(sold uint64) (uint64, error) {
	v, err := MulDiv(c.cost(u64(sold)), big.NewInt(1), c.d, shared.RoundingUp)
	if err != nil {
		return 0, err
	}
	return ToU64(v)
}
