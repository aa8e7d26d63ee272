package bonding_curve

import (
	"context"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/cpamm"
	"github.com/krazyTry/launchpad-go/events"
	"github.com/krazyTry/launchpad-go/runtime"
	"github.com/krazyTry/launchpad-go/store"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	ctx    context.Context
	rt     *runtime.Runtime
	amm    *cpamm.CpAmm
	events *events.Recorder
	client *LaunchpadClient
}

// flatConfig prices every meme unit at one quote unit.
func flatConfig(supply, omega uint64) Config {
	return Config{
		AlphaAbs:         0,
		Beta:             1,
		PriceFactorNum:   1,
		PriceFactorDenom: 1,
		GammaM:           supply,
		OmegaM:           omega,
		Decimals:         Decimals{Alpha: 1, Beta: 1, Quote: 1},
	}
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	rt := runtime.New(store.NewMemoryStore(), nil)
	amm, err := cpamm.NewCpAmm(rt, 25, nil)
	require.NoError(t, err)
	config, err := cpamm.DeriveConfigAddress(0)
	require.NoError(t, err)

	rec := &events.Recorder{}
	base := []Option{WithDestination(amm, config), WithEventSink(rec)}
	return &harness{
		t:      t,
		ctx:    context.Background(),
		rt:     rt,
		amm:    amm,
		events: rec,
		client: NewLaunchpadClient(rt, append(base, opts...)...),
	}
}

func (h *harness) newPool(meme, quote solanago.PublicKey, config Config, fees Fees) solanago.PublicKey {
	h.t.Helper()
	pool, err := h.client.Pool.NewPool(h.ctx, NewPoolParams{
		MemeMint:  meme,
		QuoteMint: quote,
		Creator:   solanago.NewWallet().PublicKey(),
		Fees:      fees,
		Config:    config,
	})
	require.NoError(h.t, err)
	return pool
}

// trader funds a fresh owner with quote and returns swap params wired to the
// owner's token accounts.
func (h *harness) trader(pool solanago.PublicKey, quoteBalance uint64) SwapParams {
	h.t.Helper()
	owner := solanago.NewWallet().PublicKey()
	meme, quote, err := h.client.Accounts.SwapAccounts(h.ctx, pool, owner)
	require.NoError(h.t, err)
	if quoteBalance > 0 {
		state, err := h.client.State.GetPool(h.ctx, pool)
		require.NoError(h.t, err)
		_, err = h.client.Accounts.Fund(h.ctx, owner, state.QuoteReserve.Mint, quoteBalance)
		require.NoError(h.t, err)
	}
	return SwapParams{Pool: pool, Owner: owner, UserMeme: meme, UserQuote: quote}
}

func (h *harness) balance(account solanago.PublicKey) uint64 {
	h.t.Helper()
	v, err := h.client.State.GetTokenBalance(h.ctx, account)
	require.NoError(h.t, err)
	return v
}

func (h *harness) pool(address solanago.PublicKey) *BoundPool {
	h.t.Helper()
	p, err := h.client.State.GetPool(h.ctx, address)
	require.NoError(h.t, err)
	return p
}

func buy(params SwapParams, amount, minOut uint64) SwapParams {
	params.AmountIn = amount
	params.MinAmountOut = minOut
	return params
}
