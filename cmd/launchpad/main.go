package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	bc "github.com/krazyTry/launchpad-go/bonding_curve"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/cpamm"
	"github.com/krazyTry/launchpad-go/events"
	"github.com/krazyTry/launchpad-go/events/postgres"
	"github.com/krazyTry/launchpad-go/internal/config"
	"github.com/krazyTry/launchpad-go/runtime"
	"github.com/krazyTry/launchpad-go/store"
)

func main() {
	root := &cobra.Command{
		Use:          "launchpad",
		Short:        "Bonding curve launchpad ledger",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("data-dir", "./data/ledger", "ledger directory")
	root.PersistentFlags().String("store", "pebble", "store backend (memory, pebble, leveldb)")
	root.PersistentFlags().Int("cache-size", 4096, "record cache entries, 0 disables")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("pg-dsn", "", "Postgres DSN for the event log")
	root.PersistentFlags().String("destination-config", "", "constant-product config for migrated pools")
	root.PersistentFlags().Bool("auto-migrate", false, "migrate in the swap that crosses the threshold")

	root.AddCommand(
		newInitTargetCmd(),
		newPoolCmd(),
		newFundCmd(),
		newSwapCmd("buy", "Buy meme with quote", shared.TradeDirectionQuoteToMeme),
		newSwapCmd("sell", "Sell meme for quote", shared.TradeDirectionMemeToQuote),
		newQuoteCmd(),
		newMigrateCmd(),
		newShowCmd(),
		newPoolsCmd(),
		newSimulateCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is everything a command needs, opened from the merged config.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  store.Store
	amm    *cpamm.CpAmm
	client *bc.LaunchpadClient
	pg     *postgres.Sink
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return openAppWith(cmd.Context(), cfg)
}

func openAppWith(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Store, cfg.DataDir, cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt := runtime.New(st, logger.Named("runtime"))

	amm, err := cpamm.NewCpAmm(rt, cfg.CpAmmFeeBps, logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	destination := cfg.DestinationConfig
	if destination.IsZero() {
		if destination, err = cpamm.DeriveConfigAddress(0); err != nil {
			st.Close()
			return nil, err
		}
	}

	a := &app{cfg: cfg, logger: logger, store: st, amm: amm}
	var sink events.Sink = events.NewLogSink(logger)
	if cfg.PGDSN != "" {
		a.pg, err = postgres.NewSink(ctx, cfg.PGDSN)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		sink = events.Multi{sink, a.pg}
	}

	a.client = bc.NewLaunchpadClient(rt,
		bc.WithDestination(amm, destination),
		bc.WithAutoMigrate(cfg.AutoMigrate),
		bc.WithEventSink(sink),
		bc.WithLogger(logger.Named("launchpad")),
	)
	return a, nil
}

func (a *app) Close() {
	if a.pg != nil {
		a.pg.Close()
	}
	if cached, ok := a.store.(*store.Cached); ok {
		hits, misses := cached.Stats()
		a.logger.Debug("record cache", zap.Uint64("hits", hits), zap.Uint64("misses", misses))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// run opens the app under a signal-aware context and hands it to fn.
func run(fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a, cmd, args)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
