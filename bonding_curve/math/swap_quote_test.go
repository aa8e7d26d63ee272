package math

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatConfig prices every meme unit at one quote unit.
func flatConfig(supply, omega uint64) shared.Config {
	return shared.Config{
		AlphaAbs:         0,
		Beta:             1,
		PriceFactorNum:   1,
		PriceFactorDenom: 1,
		GammaM:           supply,
		OmegaM:           omega,
		Decimals:         shared.Decimals{Alpha: 1, Beta: 1, Quote: 1},
	}
}

// launchConfig mirrors the launch defaults: rising price over a 3e12 supply.
func launchConfig() shared.Config {
	return shared.Config{
		AlphaAbs:         1_000_000,
		Beta:             1_000_000_000,
		PriceFactorNum:   1,
		PriceFactorDenom: 10,
		GammaS:           1_000_000_000_000,
		GammaM:           3_000_000_000_000,
		OmegaM:           2_400_000_000_000,
		Decimals:         shared.Decimals{Alpha: 1_000_000, Beta: 1_000_000_000, Quote: 1_000_000_000},
	}
}

func newTestPool(config shared.Config, fees shared.Fees) *shared.BoundPool {
	return &shared.BoundPool{
		MemeReserve:  shared.Reserve{Tokens: config.GammaM, Mint: solanago.NewWallet().PublicKey(), Vault: solanago.NewWallet().PublicKey()},
		QuoteReserve: shared.Reserve{Mint: solanago.WrappedSol, Vault: solanago.NewWallet().PublicKey()},
		Fees:         fees,
		Config:       config,
	}
}

func TestSwapAmountsZeroAmount(t *testing.T) {
	pool := newTestPool(flatConfig(1_000, 800), shared.Fees{})
	before := *pool

	_, err := SwapAmounts(pool, 0, 0, shared.TradeDirectionQuoteToMeme)
	assert.ErrorIs(t, err, shared.ErrZeroAmount)
	_, err = SwapAmounts(pool, 0, 0, shared.TradeDirectionMemeToQuote)
	assert.ErrorIs(t, err, shared.ErrZeroAmount)
	assert.Equal(t, before, *pool)
}

func TestSwapAmountsLockedPool(t *testing.T) {
	pool := newTestPool(flatConfig(1_000, 800), shared.Fees{})
	pool.Locked = true

	_, err := SwapAmounts(pool, 10, 0, shared.TradeDirectionQuoteToMeme)
	assert.ErrorIs(t, err, shared.ErrPoolLocked)
}

func TestSwapAmountsBuyFeeSplit(t *testing.T) {
	pool := newTestPool(flatConfig(1_000_000, 800_000), shared.Fees{FeeMemePercent: 20_000_000, FeeQuotePercent: 10_000_000})

	amount, err := SwapAmounts(pool, 1_000, 0, shared.TradeDirectionQuoteToMeme)
	require.NoError(t, err)
	// 1% of 1000 quote in, then 2% of the 990 meme out
	assert.Equal(t, shared.SwapAmount{AmountIn: 990, AdminFeeIn: 10, AmountOut: 970, AdminFeeOut: 20}, amount)
}

func TestSwapAmountsFeeRoundsUp(t *testing.T) {
	pool := newTestPool(flatConfig(1_000_000, 800_000), shared.Fees{FeeQuotePercent: 10_000_000})

	amount, err := SwapAmounts(pool, 1, 0, shared.TradeDirectionQuoteToMeme)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), amount.AdminFeeIn)
	assert.Equal(t, uint64(0), amount.AmountIn)
	assert.Equal(t, uint64(0), amount.AmountOut)
}

func TestSwapConservation(t *testing.T) {
	pool := newTestPool(launchConfig(), shared.Fees{FeeMemePercent: 5_000_000, FeeQuotePercent: 10_000_000})

	buys := []uint64{1, 999, 1_000_000, 250_000_000, 7_777_777_777}
	for _, in := range buys {
		memeBefore, quoteBefore := pool.MemeReserve.Tokens, pool.QuoteReserve.Tokens
		amount, err := SwapAmounts(pool, in, 0, shared.TradeDirectionQuoteToMeme)
		require.NoError(t, err)
		require.NoError(t, ApplySwap(pool, shared.TradeDirectionQuoteToMeme, amount))

		assert.Equal(t, memeBefore, pool.MemeReserve.Tokens+amount.AmountOut+amount.AdminFeeOut)
		assert.Equal(t, quoteBefore+in, pool.QuoteReserve.Tokens)
	}

	sold, err := pool.Sold()
	require.NoError(t, err)
	sells := []uint64{1, 12_345, sold / 4}
	for _, in := range sells {
		memeBefore, quoteBefore := pool.MemeReserve.Tokens, pool.QuoteReserve.Tokens
		amount, err := SwapAmounts(pool, in, 0, shared.TradeDirectionMemeToQuote)
		require.NoError(t, err)
		require.NoError(t, ApplySwap(pool, shared.TradeDirectionMemeToQuote, amount))

		assert.Equal(t, quoteBefore, pool.QuoteReserve.Tokens+amount.AmountOut+amount.AdminFeeOut)
		assert.Equal(t, memeBefore+in, pool.MemeReserve.Tokens)
	}
	assert.Positive(t, pool.AdminFeesMeme+pool.AdminFeesQuote)
}

func TestSwapAmountsMonotonic(t *testing.T) {
	pool := newTestPool(launchConfig(), shared.Fees{FeeMemePercent: 3_000_000, FeeQuotePercent: 10_000_000})

	inputs := []uint64{1, 2, 3, 10, 101, 1_000, 65_536, 1_000_000, 10_000_000, 999_999_999, 50_000_000_000}
	var last uint64
	for _, in := range inputs {
		amount, err := SwapAmounts(pool, in, 0, shared.TradeDirectionQuoteToMeme)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, amount.AmountOut, last, "buy input %d", in)
		last = amount.AmountOut
	}

	// move the curve so there is supply to sell back
	amount, err := SwapAmounts(pool, 50_000_000_000, 0, shared.TradeDirectionQuoteToMeme)
	require.NoError(t, err)
	require.NoError(t, ApplySwap(pool, shared.TradeDirectionQuoteToMeme, amount))

	last = 0
	for _, in := range inputs {
		if in > amount.AmountOut {
			break
		}
		sell, err := SwapAmounts(pool, in, 0, shared.TradeDirectionMemeToQuote)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sell.AmountOut, last, "sell input %d", in)
		last = sell.AmountOut
	}
}

func TestSwapAmountsDeterministic(t *testing.T) {
	pool := newTestPool(launchConfig(), shared.Fees{FeeQuotePercent: 10_000_000})
	a, err := SwapAmounts(pool, 123_456_789, 0, shared.TradeDirectionQuoteToMeme)
	require.NoError(t, err)
	b, err := SwapAmounts(pool, 123_456_789, 0, shared.TradeDirectionQuoteToMeme)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSwapAmountsReserveExceeded(t *testing.T) {
	pool := newTestPool(flatConfig(1_000, 800), shared.Fees{})

	_, err := SwapAmounts(pool, 1_001, 0, shared.TradeDirectionQuoteToMeme)
	assert.ErrorIs(t, err, shared.ErrArithmeticFault)

	// nothing sold yet, nothing to sell back
	_, err = SwapAmounts(pool, 1, 0, shared.TradeDirectionMemeToQuote)
	assert.ErrorIs(t, err, shared.ErrArithmeticFault)
}

func TestSwapAmountsSellAboveQuoteReserve(t *testing.T) {
	pool := newTestPool(flatConfig(1_000, 800), shared.Fees{})
	pool.MemeReserve.Tokens = 500
	pool.QuoteReserve.Tokens = 10

	_, err := SwapAmounts(pool, 100, 0, shared.TradeDirectionMemeToQuote)
	assert.ErrorIs(t, err, shared.ErrArithmeticFault)
}

func TestSwapDepletionLock(t *testing.T) {
	const supply = 500_000_000_000
	pool := newTestPool(flatConfig(supply, supply), shared.Fees{})

	amount, err := SwapAmounts(pool, supply, 0, shared.TradeDirectionQuoteToMeme)
	require.NoError(t, err)
	require.Equal(t, uint64(supply), amount.AmountOut)

	require.NoError(t, ApplySwap(pool, shared.TradeDirectionQuoteToMeme, amount))
	assert.Zero(t, pool.MemeReserve.Tokens)
	assert.True(t, pool.Locked)
	assert.Equal(t, shared.PoolStatusDepleted, pool.Status())

	_, err = SwapAmounts(pool, 1, 0, shared.TradeDirectionMemeToQuote)
	assert.ErrorIs(t, err, shared.ErrPoolLocked)

	triggered, err := IsMigrationTriggered(pool)
	require.NoError(t, err)
	assert.False(t, triggered)
}

func TestApplySwapUnderflowLeavesPoolUntouched(t *testing.T) {
	pool := newTestPool(flatConfig(1_000, 800), shared.Fees{})
	before := *pool

	err := ApplySwap(pool, shared.TradeDirectionQuoteToMeme, shared.SwapAmount{AmountIn: 5, AdminFeeIn: 1, AmountOut: 1_000, AdminFeeOut: 1})
	assert.ErrorIs(t, err, shared.ErrArithmeticFault)
	assert.Equal(t, before, *pool)
}

func TestCheckSlippage(t *testing.T) {
	amount := shared.SwapAmount{AmountOut: 100}
	assert.NoError(t, CheckSlippage(amount, 100))
	assert.ErrorIs(t, CheckSlippage(amount, 101), shared.ErrSlippageExceeded)
}

func TestGetMinimumAmountOut(t *testing.T) {
	assert.Equal(t, uint64(1_000), GetMinimumAmountOut(1_000, 0))
	assert.Equal(t, uint64(975), GetMinimumAmountOut(1_000, 250))
	assert.Equal(t, uint64(0), GetMinimumAmountOut(1_000, 10_000))
}
