package bonding_curve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/golang/mock/gomock"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/cpamm"
	"github.com/krazyTry/launchpad-go/cpamm/mock_cpamm"
	"github.com/krazyTry/launchpad-go/events"
	"github.com/krazyTry/launchpad-go/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedPool creates a flat pool and buys exactly up to the threshold, leaving
// supply-threshold meme and threshold quote in the reserves.
func (h *harness) lockedPool(meme, quote solanago.PublicKey, supply, threshold uint64) solanago.PublicKey {
	h.t.Helper()
	address := h.newPool(meme, quote, flatConfig(supply, threshold), Fees{})
	user := h.trader(address, threshold)
	res, err := h.client.Pool.QuoteForMeme(h.ctx, buy(user, threshold, threshold))
	require.NoError(h.t, err)
	require.True(h.t, res.MigrationTriggered)
	return address
}

func TestMigrateLiquiditySplit(t *testing.T) {
	h := newHarness(t)
	meme, quote := solanago.PublicKey{1}, solanago.PublicKey{2}
	address := h.lockedPool(meme, quote, 50_010_000, 10_000)

	pool := h.pool(address)
	require.Equal(t, uint64(50_000_000), pool.MemeReserve.Tokens)
	require.Equal(t, uint64(10_000), pool.QuoteReserve.Tokens)

	result, err := h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	require.NoError(t, err)
	assert.Equal(t, MigrationLiquidity{
		MemeToDestination:  47_500_000,
		QuoteToDestination: 9_500,
		MemeResidual:       2_500_000,
		QuoteResidual:      500,
	}, result.Liquidity)
	assert.Equal(t, meme, result.TokenAMint)
	assert.Equal(t, uint64(47_500_000), result.TokenAAmount)
	assert.Equal(t, uint64(9_500), result.TokenBAmount)

	pool = h.pool(address)
	assert.True(t, pool.PoolMigration)
	assert.True(t, pool.Locked)
	assert.Equal(t, result.Destination, pool.MigrationPoolKey)
	assert.Equal(t, uint64(2_500_000), pool.MemeReserve.Tokens)
	assert.Equal(t, uint64(500), pool.QuoteReserve.Tokens)
	assert.Equal(t, shared.PoolStatusMigrated, pool.Status())
	assert.Equal(t, uint64(2_500_000), h.balance(pool.MemeReserve.Vault))
	assert.Equal(t, uint64(500), h.balance(pool.QuoteReserve.Vault))

	dest, err := h.amm.GetPool(h.ctx, result.Destination)
	require.NoError(t, err)
	assert.Equal(t, meme, dest.TokenAMint)
	assert.Equal(t, quote, dest.TokenBMint)
	assert.Equal(t, uint64(47_500_000), h.balance(dest.TokenAVault))
	assert.Equal(t, uint64(9_500), h.balance(dest.TokenBVault))

	migrated := h.events.OfKind(events.KindMigrated)
	require.Len(t, migrated, 1)
	assert.Equal(t, result.Destination, migrated[0].Destination)
}

func TestMigrateExactlyOnce(t *testing.T) {
	h := newHarness(t)
	address := h.lockedPool(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), 1_000_000, 800_000)

	_, err := h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	require.NoError(t, err)
	after := *h.pool(address)

	_, err = h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	assert.ErrorIs(t, err, shared.ErrAlreadyMigrated)
	assert.Equal(t, after, *h.pool(address))

	user := h.trader(address, 10)
	_, err = h.client.Pool.QuoteForMeme(h.ctx, buy(user, 10, 0))
	assert.ErrorIs(t, err, shared.ErrPoolLocked)
}

func TestMigrateBeforeThreshold(t *testing.T) {
	h := newHarness(t)
	address := h.newPool(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), flatConfig(1_000_000, 800_000), Fees{})
	user := h.trader(address, 1_000)
	_, err := h.client.Pool.QuoteForMeme(h.ctx, buy(user, 1_000, 0))
	require.NoError(t, err)

	_, err = h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	assert.ErrorIs(t, err, shared.ErrThresholdNotReached)
}

func TestMigrateSortsMintsLowerFirst(t *testing.T) {
	h := newHarness(t)
	meme, quote := solanago.PublicKey{9}, solanago.PublicKey{3}
	address := h.lockedPool(meme, quote, 1_000_000, 800_000)

	result, err := h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	require.NoError(t, err)
	assert.Equal(t, quote, result.TokenAMint)
	assert.Equal(t, meme, result.TokenBMint)
	assert.Equal(t, uint64(760_000), result.TokenAAmount)
	assert.Equal(t, uint64(190_000), result.TokenBAmount)

	dest, err := h.amm.GetPool(h.ctx, result.Destination)
	require.NoError(t, err)
	assert.Equal(t, uint64(760_000), dest.TokenAAmount)
	assert.Equal(t, uint64(190_000), dest.TokenBAmount)
}

func TestMigrateCreationFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	creator := mock_cpamm.NewMockPoolCreator(ctrl)
	h := newHarness(t, WithDestination(creator, solanago.PublicKey{7}))

	meme, quote := solanago.PublicKey{1}, solanago.PublicKey{2}
	address := h.lockedPool(meme, quote, 1_000_000, 800_000)
	before := *h.pool(address)

	// the adapter moves part of the liquidity before failing
	sink, err := h.client.Accounts.Fund(h.ctx, solanago.NewWallet().PublicKey(), meme, 0)
	require.NoError(t, err)
	creator.EXPECT().Accounts(gomock.Any()).Return([]solanago.PublicKey{sink}, nil)
	creator.EXPECT().CreatePool(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *runtime.Tx, params cpamm.CreatePoolParams) (solanago.PublicKey, error) {
			assert.Equal(t, solanago.PublicKey{7}, params.Config)
			assert.Equal(t, meme, params.TokenAMint)
			assert.Equal(t, uint64(190_000), params.TokenAAmount)
			assert.Equal(t, uint64(760_000), params.TokenBAmount)
			require.NoError(t, tx.Transfer(params.SourceA, sink, params.Authority, params.TokenAAmount))
			return solanago.PublicKey{}, errors.New("vault init failed")
		})

	_, err = h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	assert.ErrorIs(t, err, shared.ErrCreationFailure)

	assert.Equal(t, before, *h.pool(address))
	assert.Equal(t, uint64(0), h.balance(sink))
	assert.Equal(t, uint64(200_000), h.balance(before.MemeReserve.Vault))
	assert.Equal(t, uint64(800_000), h.balance(before.QuoteReserve.Vault))
	assert.Empty(t, h.events.OfKind(events.KindMigrated))
}

func TestMigrateOrderingViolationFromAdapter(t *testing.T) {
	ctrl := gomock.NewController(t)
	creator := mock_cpamm.NewMockPoolCreator(ctrl)
	h := newHarness(t, WithDestination(creator, solanago.PublicKey{7}))
	address := h.lockedPool(solanago.PublicKey{1}, solanago.PublicKey{2}, 1_000_000, 800_000)

	creator.EXPECT().Accounts(gomock.Any()).Return(nil, nil)
	creator.EXPECT().CreatePool(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(solanago.PublicKey{}, fmt.Errorf("%w: reversed", cpamm.ErrNotCanonicalOrder))

	_, err := h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	assert.ErrorIs(t, err, shared.ErrOrderingViolation)
	assert.False(t, h.pool(address).PoolMigration)
}

func TestMigrateOrderingViolationBeforeAnyTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	creator := mock_cpamm.NewMockPoolCreator(ctrl)
	h := newHarness(t, WithDestination(creator, solanago.PublicKey{7}))
	address := h.lockedPool(solanago.PublicKey{1}, solanago.PublicKey{2}, 1_000_000, 800_000)
	before := *h.pool(address)

	creator.EXPECT().Accounts(gomock.Any()).
		Return(nil, fmt.Errorf("%w: reversed", cpamm.ErrNotCanonicalOrder))

	_, err := h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	assert.ErrorIs(t, err, shared.ErrOrderingViolation)
	assert.NotErrorIs(t, err, shared.ErrCreationFailure)
	assert.Equal(t, before, *h.pool(address))
	assert.Equal(t, uint64(200_000), h.balance(before.MemeReserve.Vault))
	assert.Equal(t, uint64(800_000), h.balance(before.QuoteReserve.Vault))
}

func TestMigrateWithoutDestination(t *testing.T) {
	h := newHarness(t, WithDestination(nil, solanago.PublicKey{}))
	address := h.lockedPool(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), 1_000, 800)

	_, err := h.client.Migration.Migrate(h.ctx, MigrateParams{Pool: address})
	assert.ErrorIs(t, err, shared.ErrCreationFailure)
}

func TestAutoMigrate(t *testing.T) {
	h := newHarness(t, WithAutoMigrate(true))
	address := h.newPool(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), flatConfig(1_000_000, 800_000), Fees{})
	user := h.trader(address, 900_000)

	res, err := h.client.Pool.QuoteForMeme(h.ctx, buy(user, 850_000, 0))
	require.NoError(t, err)
	assert.True(t, res.MigrationTriggered)
	require.NotNil(t, res.Migration)
	assert.Equal(t, uint64(142_500), res.Migration.Liquidity.MemeToDestination)
	assert.Equal(t, uint64(807_500), res.Migration.Liquidity.QuoteToDestination)
	assert.Equal(t, shared.PoolStatusMigrated, h.pool(address).Status())
}

func TestAutoMigrateFailureKeepsSwap(t *testing.T) {
	ctrl := gomock.NewController(t)
	creator := mock_cpamm.NewMockPoolCreator(ctrl)
	creator.EXPECT().Accounts(gomock.Any()).Return(nil, nil)
	creator.EXPECT().CreatePool(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(solanago.PublicKey{}, errors.New("unavailable"))
	h := newHarness(t, WithDestination(creator, solanago.PublicKey{7}), WithAutoMigrate(true))

	address := h.newPool(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), flatConfig(1_000, 800), Fees{})
	user := h.trader(address, 800)
	res, err := h.client.Pool.QuoteForMeme(h.ctx, buy(user, 800, 800))
	require.NoError(t, err)
	assert.True(t, res.MigrationTriggered)
	assert.Nil(t, res.Migration)

	pool := h.pool(address)
	assert.Equal(t, shared.PoolStatusPendingMigration, pool.Status())
	assert.Equal(t, uint64(800), h.balance(user.UserMeme))
}

func TestParallelPoolsAreIndependent(t *testing.T) {
	h := newHarness(t)
	a := h.newPool(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), flatConfig(1_000_000, 800_000), Fees{})
	b := h.newPool(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), flatConfig(1_000_000, 800_000), Fees{})
	ua, ub := h.trader(a, 500), h.trader(b, 700)

	done := make(chan error, 2)
	go func() { _, err := h.client.Pool.QuoteForMeme(h.ctx, buy(ua, 500, 0)); done <- err }()
	go func() { _, err := h.client.Pool.QuoteForMeme(h.ctx, buy(ub, 700, 0)); done <- err }()
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	assert.Equal(t, uint64(500), h.pool(a).QuoteReserve.Tokens)
	assert.Equal(t, uint64(700), h.pool(b).QuoteReserve.Tokens)
}
