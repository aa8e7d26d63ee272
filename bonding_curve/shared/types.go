package shared

import (
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
)

const (
	// FeePrecision is the fixed-point scale of Fees. 10_000_000 is 1%.
	FeePrecision = 1_000_000_000

	MaxBasisPoint = 10_000

	// MigrationLiquidityBps is the share of each reserve handed to the destination AMM.
	MigrationLiquidityBps = 9_500

	// MigrationThresholdPercent is the canonical sold share encoded by OmegaM.
	MigrationThresholdPercent = 80

	DiscriminatorSize = 8
)

type TradeDirection uint8

const (
	TradeDirectionQuoteToMeme TradeDirection = 0
	TradeDirectionMemeToQuote TradeDirection = 1
)

func (d TradeDirection) String() string {
	switch d {
	case TradeDirectionQuoteToMeme:
		return "quote_for_meme"
	case TradeDirectionMemeToQuote:
		return "meme_for_quote"
	default:
		return "unknown"
	}
}

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

type PoolStatus uint8

const (
	PoolStatusCurve            PoolStatus = 0
	PoolStatusPendingMigration PoolStatus = 1
	PoolStatusMigrated         PoolStatus = 2
	PoolStatusDepleted         PoolStatus = 3
)

func (s PoolStatus) String() string {
	switch s {
	case PoolStatusCurve:
		return "curve"
	case PoolStatusPendingMigration:
		return "pending_migration"
	case PoolStatusMigrated:
		return "migrated"
	case PoolStatusDepleted:
		return "depleted"
	default:
		return "unknown"
	}
}

var (
	U64Max = new(big.Int).SetUint64(^uint64(0))
)

// Reserve is one side of a pool: the tradable balance and where it is custodied.
type Reserve struct {
	Tokens uint64
	Mint   solanago.PublicKey
	Vault  solanago.PublicKey
}

type Fees struct {
	FeeMemePercent  uint64
	FeeQuotePercent uint64
}

// Decimals holds the fixed-point scale of each curve coefficient.
type Decimals struct {
	Alpha uint64
	Beta  uint64
	Quote uint64
}

type Config struct {
	AlphaAbs         uint64
	Beta             uint64
	PriceFactorNum   uint64
	PriceFactorDenom uint64
	GammaS           uint64
	GammaM           uint64
	OmegaM           uint64
	Decimals         Decimals
}

// BoundPool is the persisted per-pair bonding curve record.
type BoundPool struct {
	MemeReserve      Reserve
	QuoteReserve     Reserve
	AdminFeesMeme    uint64
	AdminFeesQuote   uint64
	FeeVaultQuote    solanago.PublicKey
	CreatorAddr      solanago.PublicKey
	Fees             Fees
	Config           Config
	Locked           bool
	PoolMigration    bool
	MigrationPoolKey solanago.PublicKey
}

// Sold returns the meme supply that has left the curve. GammaM is the curve's
// initial meme supply.
func (p *BoundPool) Sold() (uint64, error) {
	if p.MemeReserve.Tokens > p.Config.GammaM {
		return 0, ArithmeticFault("meme reserve above curve supply")
	}
	return p.Config.GammaM - p.MemeReserve.Tokens, nil
}

func (p *BoundPool) Status() PoolStatus {
	switch {
	case p.PoolMigration:
		return PoolStatusMigrated
	case p.Locked && p.MemeReserve.Tokens == 0:
		return PoolStatusDepleted
	case p.Locked:
		return PoolStatusPendingMigration
	default:
		return PoolStatusCurve
	}
}

type SwapAmount struct {
	AmountIn    uint64
	AmountOut   uint64
	AdminFeeIn  uint64
	AdminFeeOut uint64
}

type TargetConfig struct {
	TokenTargetAmount uint64
	TokenMint         solanago.PublicKey
	PairTokenMint     solanago.PublicKey
}

// MigrationLiquidity is the split of the remaining reserves at graduation.
type MigrationLiquidity struct {
	MemeToDestination  uint64
	QuoteToDestination uint64
	MemeResidual       uint64
	QuoteResidual      uint64
}
