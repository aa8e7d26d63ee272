package bonding_curve

import (
	"context"
	"errors"
	"fmt"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/math"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/cpamm"
	"github.com/krazyTry/launchpad-go/events"
	"github.com/krazyTry/launchpad-go/runtime"
	"go.uber.org/zap"
)

// LaunchpadProgram carries what every service needs: the execution runtime,
// the curve, the destination AMM and where events go.
type LaunchpadProgram struct {
	Runtime     *runtime.Runtime
	Curve       math.CurveFactory
	Destination cpamm.PoolCreator
	// DestinationConfig is the config identity passed to the destination AMM.
	DestinationConfig solanago.PublicKey
	AutoMigrate       bool
	Events            events.Sink
	Logger            *zap.Logger
	now               func() time.Time
}

type Option func(*LaunchpadProgram)

func WithCurve(factory math.CurveFactory) Option {
	return func(p *LaunchpadProgram) { p.Curve = factory }
}

func WithDestination(creator cpamm.PoolCreator, config solanago.PublicKey) Option {
	return func(p *LaunchpadProgram) {
		p.Destination = creator
		p.DestinationConfig = config
	}
}

// WithAutoMigrate runs Migrate right after the swap that locked the pool.
func WithAutoMigrate(enabled bool) Option {
	return func(p *LaunchpadProgram) { p.AutoMigrate = enabled }
}

func WithEventSink(sink events.Sink) Option {
	return func(p *LaunchpadProgram) { p.Events = sink }
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *LaunchpadProgram) { p.Logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(p *LaunchpadProgram) { p.now = now }
}

func NewLaunchpadProgram(rt *runtime.Runtime, opts ...Option) *LaunchpadProgram {
	p := &LaunchpadProgram{
		Runtime: rt,
		Curve:   math.LinearCurveFactory,
		Events:  events.Nop{},
		Logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.Curve == nil {
		p.Curve = math.LinearCurveFactory
	}
	if p.Events == nil {
		p.Events = events.Nop{}
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return p
}

func (p *LaunchpadProgram) loadPool(ctx context.Context, address solanago.PublicKey) (*shared.BoundPool, error) {
	data, err := p.Runtime.Record(ctx, address)
	if err != nil {
		if errors.Is(err, runtime.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrPoolNotFound, address)
		}
		return nil, err
	}
	return shared.ParseAccountBoundPool(data)
}

func (p *LaunchpadProgram) loadPoolTx(tx *runtime.Tx, address solanago.PublicKey) (*shared.BoundPool, error) {
	data, err := tx.Record(address)
	if err != nil {
		if errors.Is(err, runtime.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrPoolNotFound, address)
		}
		return nil, err
	}
	return shared.ParseAccountBoundPool(data)
}

func (p *LaunchpadProgram) storePoolTx(tx *runtime.Tx, address solanago.PublicKey, pool *shared.BoundPool) error {
	data, err := pool.Marshal()
	if err != nil {
		return err
	}
	return tx.PutRecord(address, data)
}

// emit never fails the operation; the state change already committed.
func (p *LaunchpadProgram) emit(ctx context.Context, e events.Event) {
	e.Time = p.now()
	if err := p.Events.Emit(ctx, e); err != nil {
		p.Logger.Warn("emit event failed", zap.String("kind", string(e.Kind)), zap.Stringer("pool", e.Pool), zap.Error(err))
	}
}
