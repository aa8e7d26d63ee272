package main

import (
	"context"
	"fmt"
	"os"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	bc "github.com/krazyTry/launchpad-go/bonding_curve"
	"github.com/krazyTry/launchpad-go/bonding_curve/helpers"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
)

func pubkeyFlag(cmd *cobra.Command, name string) (solanago.PublicKey, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return solanago.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	key, err := solanago.PublicKeyFromBase58(raw)
	if err != nil {
		return solanago.PublicKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return key, nil
}

// poolDecimals returns the display decimals of the meme and quote legs.
func poolDecimals(pool *bc.BoundPool) (meme, quote uint8, err error) {
	if meme, err = helpers.DecimalsFromScale(pool.Config.Decimals.Alpha); err != nil {
		return 0, 0, err
	}
	if quote, err = helpers.DecimalsFromScale(pool.Config.Decimals.Quote); err != nil {
		return 0, 0, err
	}
	return meme, quote, nil
}

// legDecimals returns the decimals of the input and output legs of direction.
func legDecimals(pool *bc.BoundPool, direction bc.TradeDirection) (in, out uint8, err error) {
	meme, quote, err := poolDecimals(pool)
	if err != nil {
		return 0, 0, err
	}
	if direction == shared.TradeDirectionQuoteToMeme {
		return quote, meme, nil
	}
	return meme, quote, nil
}

func newInitTargetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-target",
		Short: "Record the raise target of a token pair",
		RunE: run(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			token, err := pubkeyFlag(cmd, "token")
			if err != nil {
				return err
			}
			pair, err := pubkeyFlag(cmd, "pair")
			if err != nil {
				return err
			}
			target, _ := cmd.Flags().GetUint64("target")
			address, err := a.client.TargetConfig.InitTargetConfig(ctx, bc.InitTargetConfigParams{
				TokenMint:         token,
				PairTokenMint:     pair,
				TokenTargetAmount: target,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "target config %s\n", address)
			return nil
		}),
	}
	cmd.Flags().String("token", "", "token mint")
	cmd.Flags().String("pair", helpers.WrappedSolMint.String(), "pair token mint")
	cmd.Flags().Uint64("target", 0, "target amount in base units")
	return cmd
}

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new-pool",
		Short: "Create a bonding curve pool from a launch manifest",
		RunE: run(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("manifest")
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			spec, err := helpers.ParseLaunchSpec(data)
			if err != nil {
				return err
			}
			address, err := a.client.Pool.NewPool(ctx, bc.NewPoolParams{
				MemeMint:  spec.MemeMint,
				QuoteMint: spec.QuoteMint,
				Creator:   spec.Creator,
				Fees:      spec.Fees,
				Config:    spec.Config,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pool        %s\n", address)
			fmt.Fprintf(out, "meme vault  %s\n", helpers.DeriveMemeVaultAddress(address))
			fmt.Fprintf(out, "quote vault %s\n", helpers.DeriveQuoteVaultAddress(address))
			return nil
		}),
	}
	cmd.Flags().String("manifest", "launch.json", "launch manifest path")
	return cmd
}

func newFundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Issue tokens to an owner's token account",
		RunE: run(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			owner, err := pubkeyFlag(cmd, "owner")
			if err != nil {
				return err
			}
			mint, err := pubkeyFlag(cmd, "mint")
			if err != nil {
				return err
			}
			amount, _ := cmd.Flags().GetUint64("amount")
			account, err := a.client.Accounts.Fund(ctx, owner, mint, amount)
			if err != nil {
				return err
			}
			balance, err := a.client.State.GetTokenBalance(ctx, account)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s balance %d\n", account, balance)
			return nil
		}),
	}
	cmd.Flags().String("owner", "", "token account owner")
	cmd.Flags().String("mint", "", "token mint")
	cmd.Flags().Uint64("amount", 0, "amount in base units")
	return cmd
}

func newSwapCmd(use, short string, direction bc.TradeDirection) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: run(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			poolAddress, err := pubkeyFlag(cmd, "pool")
			if err != nil {
				return err
			}
			owner, err := pubkeyFlag(cmd, "owner")
			if err != nil {
				return err
			}
			pool, err := a.client.State.GetPool(ctx, poolAddress)
			if err != nil {
				return err
			}
			inDecimals, outDecimals, err := legDecimals(pool, direction)
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetString("amount")
			ui, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			amountIn, err := helpers.ToLamports(ui, inDecimals)
			if err != nil {
				return err
			}

			slippage := a.cfg.SlippageBps
			if cmd.Flags().Changed("slippage-bps") {
				slippage, _ = cmd.Flags().GetUint16("slippage-bps")
			}
			preview, err := a.client.Pool.GetSwapAmount(ctx, bc.SwapQuoteParams{
				Pool:        poolAddress,
				AmountIn:    amountIn,
				Direction:   direction,
				SlippageBps: slippage,
			})
			if err != nil {
				return err
			}

			userMeme, userQuote, err := a.client.Accounts.SwapAccounts(ctx, poolAddress, owner)
			if err != nil {
				return err
			}
			params := bc.SwapParams{
				Pool:         poolAddress,
				Owner:        owner,
				UserMeme:     userMeme,
				UserQuote:    userQuote,
				AmountIn:     amountIn,
				MinAmountOut: preview.MinimumAmountOut,
			}
			var result *bc.SwapResult
			if direction == shared.TradeDirectionQuoteToMeme {
				result, err = a.client.Pool.QuoteForMeme(ctx, params)
			} else {
				result, err = a.client.Pool.MemeForQuote(ctx, params)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "swapped in  %s (fee %s)\n",
				helpers.FromLamports(result.AmountIn, inDecimals), helpers.FromLamports(result.AdminFeeIn, inDecimals))
			fmt.Fprintf(out, "swapped out %s (fee %s)\n",
				helpers.FromLamports(result.AmountOut, outDecimals), helpers.FromLamports(result.AdminFeeOut, outDecimals))
			if result.MigrationTriggered {
				fmt.Fprintln(out, "migration threshold reached, pool locked")
			}
			if result.Migration != nil {
				fmt.Fprintf(out, "migrated to %s\n", result.Migration.Destination)
			}
			return nil
		}),
	}
	cmd.Flags().String("pool", "", "pool address")
	cmd.Flags().String("owner", "", "trader")
	cmd.Flags().String("amount", "0", "input amount in UI units")
	cmd.Flags().Uint16("slippage-bps", helpers.DefaultSlippageBps, "accepted slippage in basis points")
	return cmd
}

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Preview a swap without executing it",
		RunE: run(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			poolAddress, err := pubkeyFlag(cmd, "pool")
			if err != nil {
				return err
			}
			side, _ := cmd.Flags().GetString("side")
			var direction bc.TradeDirection
			switch side {
			case "buy":
				direction = shared.TradeDirectionQuoteToMeme
			case "sell":
				direction = shared.TradeDirectionMemeToQuote
			default:
				return fmt.Errorf("--side must be buy or sell, got %q", side)
			}
			amountIn, _ := cmd.Flags().GetUint64("amount")
			slippage, _ := cmd.Flags().GetUint16("slippage-bps")

			q, err := a.client.Pool.GetSwapAmount(ctx, bc.SwapQuoteParams{
				Pool:        poolAddress,
				AmountIn:    amountIn,
				Direction:   direction,
				SlippageBps: slippage,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "amount in      %d\n", q.AmountIn)
			fmt.Fprintf(out, "fee in         %d\n", q.AdminFeeIn)
			fmt.Fprintf(out, "amount out     %d\n", q.AmountOut)
			fmt.Fprintf(out, "fee out        %d\n", q.AdminFeeOut)
			fmt.Fprintf(out, "min amount out %d\n", q.MinimumAmountOut)
			if q.WouldTriggerMigration {
				fmt.Fprintln(out, "this buy reaches the migration threshold")
			}
			return nil
		}),
	}
	cmd.Flags().String("pool", "", "pool address")
	cmd.Flags().String("side", "buy", "buy or sell")
	cmd.Flags().Uint64("amount", 0, "input amount in base units")
	cmd.Flags().Uint16("slippage-bps", helpers.DefaultSlippageBps, "accepted slippage in basis points")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move a locked pool's liquidity into a constant-product pool",
		RunE: run(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			poolAddress, err := pubkeyFlag(cmd, "pool")
			if err != nil {
				return err
			}
			params := bc.MigrateParams{Pool: poolAddress}
			if cmd.Flags().Changed("pool-config") {
				if params.Config, err = pubkeyFlag(cmd, "pool-config"); err != nil {
					return err
				}
			}
			result, err := a.client.Migration.Migrate(ctx, params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "destination %s\n", result.Destination)
			fmt.Fprintf(out, "token a     %s %d\n", result.TokenAMint, result.TokenAAmount)
			fmt.Fprintf(out, "token b     %s %d\n", result.TokenBMint, result.TokenBAmount)
			fmt.Fprintf(out, "residual    meme %d quote %d\n", result.Liquidity.MemeResidual, result.Liquidity.QuoteResidual)
			return nil
		}),
	}
	cmd.Flags().String("pool", "", "pool address")
	cmd.Flags().String("pool-config", "", "override the destination config")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a pool",
		RunE: run(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			poolAddress, err := pubkeyFlag(cmd, "pool")
			if err != nil {
				return err
			}
			info, err := a.client.State.GetPoolInfo(ctx, poolAddress)
			if err != nil {
				return err
			}
			memeDecimals, quoteDecimals, err := poolDecimals(info.Pool)
			if err != nil {
				return err
			}
			p := info.Pool
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pool          %s\n", info.Address)
			fmt.Fprintf(out, "status        %s\n", info.Status)
			fmt.Fprintf(out, "meme reserve  %s (%s)\n", helpers.FromLamports(p.MemeReserve.Tokens, memeDecimals), p.MemeReserve.Mint)
			fmt.Fprintf(out, "quote reserve %s (%s)\n", helpers.FromLamports(p.QuoteReserve.Tokens, quoteDecimals), p.QuoteReserve.Mint)
			fmt.Fprintf(out, "admin fees    meme %s quote %s\n",
				helpers.FromLamports(p.AdminFeesMeme, memeDecimals), helpers.FromLamports(p.AdminFeesQuote, quoteDecimals))
			fmt.Fprintf(out, "sold          %s of %s\n",
				helpers.FromLamports(info.Sold, memeDecimals), helpers.FromLamports(p.Config.GammaM, memeDecimals))
			fmt.Fprintf(out, "progress      %s%%\n", info.Progress.Mul(decimal.NewFromInt(100)).StringFixed(2))
			if p.PoolMigration {
				dest, err := a.amm.GetPool(ctx, p.MigrationPoolKey)
				if err != nil {
					return err
				}
				decA, decB := memeDecimals, quoteDecimals
				if !dest.TokenAMint.Equals(p.MemeReserve.Mint) {
					decA, decB = quoteDecimals, memeDecimals
				}
				fmt.Fprintf(out, "migrated to   %s (liquidity %s)\n", p.MigrationPoolKey, dest.Liquidity.BigInt())
				fmt.Fprintf(out, "opening price %s token b per token a\n", dest.Price(decA, decB))
			}
			return nil
		}),
	}
	cmd.Flags().String("pool", "", "pool address")
	return cmd
}

func newPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List pools",
		RunE: run(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			var (
				pools []bc.ProgramAccount[bc.BoundPool]
				err   error
			)
			if cmd.Flags().Changed("creator") {
				creator, err := pubkeyFlag(cmd, "creator")
				if err != nil {
					return err
				}
				pools, err = a.client.State.GetPoolsByCreator(ctx, creator)
				if err != nil {
					return err
				}
			} else {
				pools, err = a.client.State.GetPools(ctx)
				if err != nil {
					return err
				}
			}
			for _, p := range pools {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s meme=%d quote=%d\n",
					p.Pubkey, p.Account.Status(), p.Account.MemeReserve.Tokens, p.Account.QuoteReserve.Tokens)
			}
			return nil
		}),
	}
	cmd.Flags().String("creator", "", "only pools created by this address")
	return cmd
}
