package math

import (
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
)

// ApplySwap books a priced trade into pool after both transfers succeeded.
// Nothing is written when an error is returned.
func ApplySwap(pool *shared.BoundPool, direction shared.TradeDirection, amount shared.SwapAmount) error {
	in, out := &pool.QuoteReserve, &pool.MemeReserve
	feesIn, feesOut := &pool.AdminFeesQuote, &pool.AdminFeesMeme
	if direction == shared.TradeDirectionMemeToQuote {
		in, out = &pool.MemeReserve, &pool.QuoteReserve
		feesIn, feesOut = &pool.AdminFeesMeme, &pool.AdminFeesQuote
	}

	nextFeesIn, err := AddU64(*feesIn, amount.AdminFeeIn)
	if err != nil {
		return err
	}
	nextFeesOut, err := AddU64(*feesOut, amount.AdminFeeOut)
	if err != nil {
		return err
	}
	credit, err := AddU64(amount.AmountIn, amount.AdminFeeIn)
	if err != nil {
		return err
	}
	nextIn, err := AddU64(in.Tokens, credit)
	if err != nil {
		return err
	}
	debit, err := AddU64(amount.AmountOut, amount.AdminFeeOut)
	if err != nil {
		return err
	}
	nextOut, err := SubU64(out.Tokens, debit)
	if err != nil {
		return err
	}

	*feesIn, *feesOut = nextFeesIn, nextFeesOut
	in.Tokens, out.Tokens = nextIn, nextOut

	if pool.MemeReserve.Tokens == 0 {
		pool.Locked = true
	}
	return nil
}
