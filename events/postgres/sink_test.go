package postgres

import (
	"context"
	"testing"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/launchpad-go/events"
)

func TestArgsOrderMatchesInsert(t *testing.T) {
	pool := solanago.NewWallet().PublicKey()
	now := time.Unix(1_700_000_000, 0).UTC()

	got := args(events.Event{
		Kind:         events.KindSwap,
		Pool:         pool,
		Direction:    "quote_to_meme",
		AmountIn:     990,
		AmountOut:    970,
		AdminFeeIn:   10,
		AdminFeeOut:  20,
		MemeReserve:  1_000,
		QuoteReserve: 18_446_744_073_709_551_615,
		Time:         now,
	})
	require.Len(t, got, 12)
	assert.Equal(t, "swap", got[0])
	assert.Equal(t, pool.String(), got[1])
	assert.Equal(t, "", got[2])
	assert.Equal(t, "990", got[4])
	assert.Equal(t, "18446744073709551615", got[9])
	assert.Equal(t, "", got[10])
	assert.Equal(t, now, got[11])
}

func TestNewSinkRejectsBadDSN(t *testing.T) {
	_, err := NewSink(context.Background(), "postgres://%zz")
	assert.Error(t, err)
}
