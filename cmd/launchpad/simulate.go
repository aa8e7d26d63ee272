package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	bc "github.com/krazyTry/launchpad-go/bonding_curve"
	"github.com/krazyTry/launchpad-go/bonding_curve/helpers"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/internal/config"
	"github.com/krazyTry/launchpad-go/runtime"
	"github.com/krazyTry/launchpad-go/store"
)

type simulateParams struct {
	Pools     int
	Traders   int
	Rounds    int
	Supply    uint64
	Threshold uint64
	Seed      int64
}

type poolOutcome struct {
	Pool        solanago.PublicKey
	Buys, Sells int
	Status      bc.PoolStatus
	Destination solanago.PublicKey
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive independent pools in parallel until they graduate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if persist, _ := cmd.Flags().GetBool("persist"); !persist {
				cfg.Store = store.BackendMemory
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openAppWith(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var p simulateParams
			p.Pools, _ = cmd.Flags().GetInt("pools")
			p.Traders, _ = cmd.Flags().GetInt("traders")
			p.Rounds, _ = cmd.Flags().GetInt("rounds")
			p.Supply, _ = cmd.Flags().GetUint64("supply")
			p.Seed, _ = cmd.Flags().GetInt64("seed")
			p.Threshold = helpers.DefaultMigrationThreshold(p.Supply)

			outcomes, err := simulate(ctx, a, p)
			if err != nil {
				return err
			}
			for _, o := range outcomes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s buys=%d sells=%d status=%s destination=%s\n",
					o.Pool, o.Buys, o.Sells, o.Status, o.Destination)
			}
			return nil
		},
	}
	cmd.Flags().Bool("persist", false, "write to the configured store instead of memory")
	cmd.Flags().Int("pools", 4, "number of pools")
	cmd.Flags().Int("traders", 4, "traders per pool")
	cmd.Flags().Int("rounds", 200, "maximum trading rounds per pool")
	cmd.Flags().Uint64("supply", 1_000_000, "meme supply per pool")
	cmd.Flags().Int64("seed", 1, "random seed")
	return cmd
}

// simulationConfig prices the s-th unit at (s+1)/1000 quote.
func simulationConfig(supply, threshold uint64) bc.Config {
	return bc.Config{
		AlphaAbs:         1,
		Beta:             1,
		PriceFactorNum:   1,
		PriceFactorDenom: 1_000,
		GammaM:           supply,
		OmegaM:           threshold,
		Decimals:         bc.Decimals{Alpha: 1, Beta: 1, Quote: 1},
	}
}

func simulate(ctx context.Context, a *app, p simulateParams) ([]poolOutcome, error) {
	quote := helpers.WrappedSolMint
	outcomes := make([]poolOutcome, p.Pools)

	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < p.Pools; i++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(p.Seed + int64(i)))
			outcome, err := simulatePool(gCtx, a, p, quote, rng)
			if err != nil {
				return fmt.Errorf("pool %d: %w", i, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func simulatePool(ctx context.Context, a *app, p simulateParams, quote solanago.PublicKey, rng *rand.Rand) (poolOutcome, error) {
	address, err := a.client.Pool.NewPool(ctx, bc.NewPoolParams{
		MemeMint:  solanago.NewWallet().PublicKey(),
		QuoteMint: quote,
		Creator:   solanago.NewWallet().PublicKey(),
		Fees:      bc.Fees{FeeMemePercent: 0, FeeQuotePercent: 10_000_000},
		Config:    simulationConfig(p.Supply, p.Threshold),
	})
	if err != nil {
		return poolOutcome{}, err
	}
	outcome := poolOutcome{Pool: address}

	cost := p.Supply * (p.Supply / 1_000)
	traders := make([]bc.SwapParams, p.Traders)
	for t := range traders {
		owner := solanago.NewWallet().PublicKey()
		meme, quoteAcc, err := a.client.Accounts.SwapAccounts(ctx, address, owner)
		if err != nil {
			return poolOutcome{}, err
		}
		if _, err := a.client.Accounts.Fund(ctx, owner, quote, cost); err != nil {
			return poolOutcome{}, err
		}
		traders[t] = bc.SwapParams{Pool: address, Owner: owner, UserMeme: meme, UserQuote: quoteAcc}
	}

	maxBuy := cost/uint64(10*p.Traders) + 1
trading:
	for round := 0; round < p.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return poolOutcome{}, err
		}
		trader := traders[rng.Intn(len(traders))]

		held, err := a.client.State.GetTokenBalance(ctx, trader.UserMeme)
		if err != nil {
			return poolOutcome{}, err
		}
		if held > 1 && rng.Intn(5) == 0 {
			trader.AmountIn = held / 2
			_, err = a.client.Pool.MemeForQuote(ctx, trader)
			if err == nil {
				outcome.Sells++
			}
		} else {
			trader.AmountIn = uint64(rng.Int63n(int64(maxBuy))) + 1
			var res *bc.SwapResult
			res, err = a.client.Pool.QuoteForMeme(ctx, trader)
			if err == nil {
				outcome.Buys++
				if res.Migration != nil {
					outcome.Destination = res.Migration.Destination
				}
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, shared.ErrPoolLocked):
			break trading
		case errors.Is(err, shared.ErrArithmeticFault), errors.Is(err, shared.ErrZeroAmount), errors.Is(err, runtime.ErrInsufficientBalance):
			a.logger.Debug("trade skipped", zap.Stringer("pool", address), zap.Error(err))
		default:
			return poolOutcome{}, err
		}
	}

	pool, err := a.client.State.GetPool(ctx, address)
	if err != nil {
		return poolOutcome{}, err
	}
	if pool.Status() == shared.PoolStatusPendingMigration {
		res, err := a.client.Migration.Migrate(ctx, bc.MigrateParams{Pool: address})
		if err != nil {
			return poolOutcome{}, err
		}
		outcome.Destination = res.Destination
	}
	if outcome.Status, err = a.client.State.GetPoolStatus(ctx, address); err != nil {
		return poolOutcome{}, err
	}
	return outcome, nil
}
