package bonding_curve

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/shopspring/decimal"
)

type (
	BoundPool          = shared.BoundPool
	TargetConfig       = shared.TargetConfig
	SwapAmount         = shared.SwapAmount
	Fees               = shared.Fees
	Config             = shared.Config
	Decimals           = shared.Decimals
	Reserve            = shared.Reserve
	TradeDirection     = shared.TradeDirection
	PoolStatus         = shared.PoolStatus
	MigrationLiquidity = shared.MigrationLiquidity
)

// ProgramAccount pairs a decoded record with its address.
type ProgramAccount[T any] struct {
	Pubkey  solanago.PublicKey
	Account *T
}

type NewPoolParams struct {
	MemeMint  solanago.PublicKey
	QuoteMint solanago.PublicKey
	Creator   solanago.PublicKey
	Fees      Fees
	Config    Config
}

type SwapParams struct {
	Pool  solanago.PublicKey
	Owner solanago.PublicKey
	// UserMeme and UserQuote are Owner's token accounts for the pool's mints.
	UserMeme  solanago.PublicKey
	UserQuote solanago.PublicKey
	AmountIn  uint64
	// MinAmountOut is the least the trader accepts to receive.
	MinAmountOut uint64
}

type SwapResult struct {
	Pool      solanago.PublicKey
	Direction TradeDirection
	SwapAmount
	// MigrationTriggered is set on the buy that locked the pool for migration.
	MigrationTriggered bool
	// Migration is filled when auto migration ran after the swap.
	Migration *MigrateResult
}

type SwapQuoteParams struct {
	Pool        solanago.PublicKey
	AmountIn    uint64
	Direction   TradeDirection
	SlippageBps uint16
}

type SwapQuoteResult struct {
	SwapAmount
	MinimumAmountOut uint64
	// WouldTriggerMigration reports whether settling this buy locks the pool.
	WouldTriggerMigration bool
}

type MigrateParams struct {
	Pool solanago.PublicKey
	// Config overrides the program's destination config when set.
	Config solanago.PublicKey
}

type MigrateResult struct {
	Pool        solanago.PublicKey
	Destination solanago.PublicKey
	TokenAMint  solanago.PublicKey
	TokenBMint  solanago.PublicKey
	TokenAAmount uint64
	TokenBAmount uint64
	Liquidity   MigrationLiquidity
}

type InitTargetConfigParams struct {
	TokenMint         solanago.PublicKey
	PairTokenMint     solanago.PublicKey
	TokenTargetAmount uint64
}

// PoolInfo is the read-side view of one pool.
type PoolInfo struct {
	Address  solanago.PublicKey
	Pool     *BoundPool
	Status   PoolStatus
	Sold     uint64
	Progress decimal.Decimal
}
