package launchpad

import (
	"context"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bc "github.com/krazyTry/launchpad-go/bonding_curve"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/cpamm"
	"github.com/krazyTry/launchpad-go/store"
)

func TestLaunchToGraduation(t *testing.T) {
	ctx := context.Background()
	st, err := OpenStore(store.BackendMemory, "", 64)
	require.NoError(t, err)
	defer st.Close()

	rt := NewRuntime(st, nil)
	amm, err := NewCpAmmClient(rt, 25, nil)
	require.NoError(t, err)
	config, err := cpamm.DeriveConfigAddress(0)
	require.NoError(t, err)
	client := NewClient(rt, bc.WithDestination(amm, config), bc.WithAutoMigrate(true))

	meme, quote := solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey()
	pool, err := client.Pool.NewPool(ctx, bc.NewPoolParams{
		MemeMint:  meme,
		QuoteMint: quote,
		Creator:   solanago.NewWallet().PublicKey(),
		Config: bc.Config{
			Beta:             1,
			PriceFactorNum:   1,
			PriceFactorDenom: 1,
			GammaM:           1_000_000,
			OmegaM:           800_000,
			Decimals:         bc.Decimals{Alpha: 1, Beta: 1, Quote: 1},
		},
	})
	require.NoError(t, err)

	owner := solanago.NewWallet().PublicKey()
	userMeme, userQuote, err := client.Accounts.SwapAccounts(ctx, pool, owner)
	require.NoError(t, err)
	_, err = client.Accounts.Fund(ctx, owner, quote, 800_000)
	require.NoError(t, err)

	res, err := client.Pool.QuoteForMeme(ctx, bc.SwapParams{
		Pool:      pool,
		Owner:     owner,
		UserMeme:  userMeme,
		UserQuote: userQuote,
		AmountIn:  800_000,
	})
	require.NoError(t, err)
	assert.True(t, res.MigrationTriggered)
	require.NotNil(t, res.Migration)

	status, err := client.State.GetPoolStatus(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, shared.PoolStatusMigrated, status)

	dest, err := amm.GetPool(ctx, res.Migration.Destination)
	require.NoError(t, err)
	assert.Equal(t, res.Migration.TokenAAmount, dest.TokenAAmount)
	assert.Equal(t, res.Migration.TokenBAmount, dest.TokenBAmount)
}
