package events

import (
	"context"
	"errors"
	"sync"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

type Kind string

const (
	KindPoolCreated        Kind = "pool_created"
	KindSwap               Kind = "swap"
	KindMigrationTriggered Kind = "migration_triggered"
	KindMigrated           Kind = "migrated"
	KindTargetConfig       Kind = "target_config"
)

// Event is emitted after the operation that produced it committed.
type Event struct {
	Kind        Kind
	Pool        solanago.PublicKey
	Signer      solanago.PublicKey
	Direction   string
	AmountIn    uint64
	AmountOut   uint64
	AdminFeeIn  uint64
	AdminFeeOut uint64

	MemeReserve  uint64
	QuoteReserve uint64

	// Destination is the graduated pool for KindMigrated
	Destination solanago.PublicKey
	Time        time.Time
}

type Sink interface {
	Emit(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Emit(context.Context, Event) error { return nil }

// LogSink writes events to a zap logger.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger.Named("events")}
}

func (s *LogSink) Emit(_ context.Context, e Event) error {
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.Stringer("pool", e.Pool),
		zap.Time("time", e.Time),
	}
	switch e.Kind {
	case KindSwap:
		fields = append(fields,
			zap.String("direction", e.Direction),
			zap.Uint64("swapped_in", e.AmountIn),
			zap.Uint64("swapped_out", e.AmountOut),
			zap.Uint64("admin_fee_in", e.AdminFeeIn),
			zap.Uint64("admin_fee_out", e.AdminFeeOut),
		)
	case KindMigrated:
		fields = append(fields,
			zap.Stringer("destination", e.Destination),
			zap.Uint64("meme_migrated", e.AmountIn),
			zap.Uint64("quote_migrated", e.AmountOut),
		)
	}
	fields = append(fields, zap.Uint64("meme_reserve", e.MemeReserve), zap.Uint64("quote_reserve", e.QuoteReserve))
	s.logger.Info("event", fields...)
	return nil
}

// Multi fans out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfKind returns recorded events of kind k in emit order.
func (r *Recorder) OfKind(k Kind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0)
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
