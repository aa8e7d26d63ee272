package shared

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundPoolStatus(t *testing.T) {
	pool := &BoundPool{MemeReserve: Reserve{Tokens: 10}, Config: Config{GammaM: 100, OmegaM: 80}}
	assert.Equal(t, PoolStatusCurve, pool.Status())

	pool.Locked = true
	assert.Equal(t, PoolStatusPendingMigration, pool.Status())

	pool.MemeReserve.Tokens = 0
	assert.Equal(t, PoolStatusDepleted, pool.Status())

	pool.PoolMigration = true
	assert.Equal(t, PoolStatusMigrated, pool.Status())
}

func TestBoundPoolSold(t *testing.T) {
	pool := &BoundPool{MemeReserve: Reserve{Tokens: 40}, Config: Config{GammaM: 100}}
	sold, err := pool.Sold()
	require.NoError(t, err)
	assert.Equal(t, uint64(60), sold)

	pool.MemeReserve.Tokens = 101
	_, err = pool.Sold()
	assert.ErrorIs(t, err, ErrArithmeticFault)
}

func TestBoundPoolAccountLayout(t *testing.T) {
	pool := &BoundPool{
		MemeReserve:  Reserve{Tokens: 690_000_000, Mint: solanago.NewWallet().PublicKey(), Vault: solanago.NewWallet().PublicKey()},
		QuoteReserve: Reserve{Tokens: 0, Mint: solanago.WrappedSol, Vault: solanago.NewWallet().PublicKey()},
		Fees:         Fees{FeeQuotePercent: 10_000_000},
		Config:       Config{PriceFactorDenom: 1, GammaM: 690_000_000, OmegaM: 552_000_000},
		Locked:       true,
	}
	data, err := pool.Marshal()
	require.NoError(t, err)
	// discriminator + 2 reserves + 2 fee counters + 2 keys + fees + config + 2 flags + key
	assert.Len(t, data, 8+2*(8+32+32)+16+64+16+80+2+32)

	decoded, err := ParseAccountBoundPool(data)
	require.NoError(t, err)
	assert.Equal(t, pool, decoded)

	_, err = ParseAccountTargetConfig(data)
	assert.Error(t, err)
}
