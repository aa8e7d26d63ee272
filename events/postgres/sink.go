package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krazyTry/launchpad-go/events"
)

const schema = `
CREATE TABLE IF NOT EXISTS launchpad_events (
	id            BIGSERIAL PRIMARY KEY,
	kind          TEXT NOT NULL,
	pool          TEXT NOT NULL,
	signer        TEXT NOT NULL DEFAULT '',
	direction     TEXT NOT NULL DEFAULT '',
	amount_in     NUMERIC(20, 0) NOT NULL DEFAULT 0,
	amount_out    NUMERIC(20, 0) NOT NULL DEFAULT 0,
	admin_fee_in  NUMERIC(20, 0) NOT NULL DEFAULT 0,
	admin_fee_out NUMERIC(20, 0) NOT NULL DEFAULT 0,
	meme_reserve  NUMERIC(20, 0) NOT NULL DEFAULT 0,
	quote_reserve NUMERIC(20, 0) NOT NULL DEFAULT 0,
	destination   TEXT NOT NULL DEFAULT '',
	emitted_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS launchpad_events_pool_idx ON launchpad_events (pool, emitted_at);
`

const insertEvent = `
	INSERT INTO launchpad_events (
		kind, pool, signer, direction, amount_in, amount_out, admin_fee_in, admin_fee_out,
		meme_reserve, quote_reserve, destination, emitted_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// Sink persists events into Postgres.
type Sink struct {
	pool *pgxpool.Pool
}

func NewSink(ctx context.Context, dsn string) (*Sink, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Sink{pool: pool}, nil
}

func (s *Sink) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Sink) Emit(ctx context.Context, e events.Event) error {
	_, err := s.pool.Exec(ctx, insertEvent, args(e)...)
	if err != nil {
		return fmt.Errorf("insert %s event: %w", e.Kind, err)
	}
	return nil
}

func args(e events.Event) []any {
	destination := ""
	if !e.Destination.IsZero() {
		destination = e.Destination.String()
	}
	signer := ""
	if !e.Signer.IsZero() {
		signer = e.Signer.String()
	}
	return []any{
		string(e.Kind),
		e.Pool.String(),
		signer,
		e.Direction,
		fmt.Sprint(e.AmountIn),
		fmt.Sprint(e.AmountOut),
		fmt.Sprint(e.AdminFeeIn),
		fmt.Sprint(e.AdminFeeOut),
		fmt.Sprint(e.MemeReserve),
		fmt.Sprint(e.QuoteReserve),
		destination,
		e.Time,
	}
}
