package cpamm

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/runtime"
	"github.com/krazyTry/launchpad-go/u128"
	"go.uber.org/zap"
)

//go:generate mockgen -source=cpamm.go -destination=mock_cpamm/mock_cpamm.go -package=mock_cpamm

// PoolCreator opens a constant-product pool inside the caller's transaction.
type PoolCreator interface {
	// Accounts lists every account CreatePool will write for params, so the
	// caller can lock them up front.
	Accounts(params CreatePoolParams) ([]solanago.PublicKey, error)
	CreatePool(ctx context.Context, tx *runtime.Tx, params CreatePoolParams) (solanago.PublicKey, error)
}

type CpAmm struct {
	Runtime   *runtime.Runtime
	Authority solanago.PublicKey
	FeeBps    uint64
	logger    *zap.Logger
}

var _ PoolCreator = (*CpAmm)(nil)

func NewCpAmm(rt *runtime.Runtime, feeBps uint64, logger *zap.Logger) (*CpAmm, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	authority, err := DerivePoolAuthority()
	if err != nil {
		return nil, err
	}
	return &CpAmm{Runtime: rt, Authority: authority, FeeBps: feeBps, logger: logger.Named("cpamm")}, nil
}

type poolAccounts struct {
	pool   solanago.PublicKey
	vaultA solanago.PublicKey
	vaultB solanago.PublicKey
}

func (c *CpAmm) derive(params CreatePoolParams) (poolAccounts, error) {
	pool, err := DerivePoolAddress(params.Config, params.TokenAMint, params.TokenBMint)
	if err != nil {
		return poolAccounts{}, err
	}
	vaultA, err := DeriveTokenVaultAddress(params.TokenAMint, pool)
	if err != nil {
		return poolAccounts{}, err
	}
	vaultB, err := DeriveTokenVaultAddress(params.TokenBMint, pool)
	if err != nil {
		return poolAccounts{}, err
	}
	return poolAccounts{pool: pool, vaultA: vaultA, vaultB: vaultB}, nil
}

func (c *CpAmm) Accounts(params CreatePoolParams) ([]solanago.PublicKey, error) {
	accs, err := c.derive(params)
	if err != nil {
		return nil, err
	}
	return []solanago.PublicKey{accs.pool, accs.vaultA, accs.vaultB, params.SourceA, params.SourceB}, nil
}

// CreatePool validates params, opens the vaults, moves the initial liquidity and
// writes the pool record. Any error leaves tx unusable for commit.
func (c *CpAmm) CreatePool(ctx context.Context, tx *runtime.Tx, params CreatePoolParams) (solanago.PublicKey, error) {
	if err := params.Validate(); err != nil {
		return solanago.PublicKey{}, err
	}
	accs, err := c.derive(params)
	if err != nil {
		return solanago.PublicKey{}, err
	}

	exists, err := tx.RecordExists(accs.pool)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	if exists {
		return solanago.PublicKey{}, fmt.Errorf("%w: %s", ErrPoolExists, accs.pool)
	}

	if _, err := tx.CreateAccount(accs.vaultA, params.TokenAMint, c.Authority); err != nil {
		return solanago.PublicKey{}, err
	}
	if _, err := tx.CreateAccount(accs.vaultB, params.TokenBMint, c.Authority); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := tx.Transfer(params.SourceA, accs.vaultA, params.Authority, params.TokenAAmount); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := tx.Transfer(params.SourceB, accs.vaultB, params.Authority, params.TokenBAmount); err != nil {
		return solanago.PublicKey{}, err
	}

	liquidity, err := u128.FromBig(GetInitialLiquidity(params.TokenAAmount, params.TokenBAmount))
	if err != nil {
		return solanago.PublicKey{}, err
	}
	sqrtPriceBig, err := GetInitialSqrtPrice(params.TokenAAmount, params.TokenBAmount)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	sqrtPrice, err := u128.FromBig(sqrtPriceBig)
	if err != nil {
		return solanago.PublicKey{}, err
	}

	record := &Pool{
		Config:       params.Config,
		Creator:      params.Creator,
		TokenAMint:   params.TokenAMint,
		TokenBMint:   params.TokenBMint,
		TokenAVault:  accs.vaultA,
		TokenBVault:  accs.vaultB,
		TokenAAmount: params.TokenAAmount,
		TokenBAmount: params.TokenBAmount,
		Liquidity:    liquidity,
		SqrtPrice:    sqrtPrice,
	}
	data, err := record.Marshal()
	if err != nil {
		return solanago.PublicKey{}, err
	}
	if err := tx.PutRecord(accs.pool, data); err != nil {
		return solanago.PublicKey{}, err
	}

	c.logger.Info("pool created",
		zap.Stringer("pool", accs.pool),
		zap.Stringer("tokenA", params.TokenAMint),
		zap.Stringer("tokenB", params.TokenBMint),
		zap.Uint64("amountA", params.TokenAAmount),
		zap.Uint64("amountB", params.TokenBAmount),
	)
	return accs.pool, nil
}

func (c *CpAmm) GetPool(ctx context.Context, pool solanago.PublicKey) (*Pool, error) {
	data, err := c.Runtime.Record(ctx, pool)
	if err != nil {
		if errors.Is(err, runtime.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, pool)
		}
		return nil, err
	}
	return ParseAccountPool(data)
}

// SwapQuote prices amountIn of inputMint against the pool's current balances.
func (c *CpAmm) SwapQuote(ctx context.Context, pool solanago.PublicKey, inputMint solanago.PublicKey, amountIn uint64) (uint64, uint64, error) {
	state, err := c.GetPool(ctx, pool)
	if err != nil {
		return 0, 0, err
	}
	vaultA, err := c.Runtime.Account(ctx, state.TokenAVault)
	if err != nil {
		return 0, 0, err
	}
	vaultB, err := c.Runtime.Account(ctx, state.TokenBVault)
	if err != nil {
		return 0, 0, err
	}

	feeNumerator := c.FeeBps * (FeeDenominator / BasisPointMax)
	switch {
	case inputMint.Equals(state.TokenAMint):
		return GetAmountOut(vaultA.Amount, vaultB.Amount, amountIn, feeNumerator)
	case inputMint.Equals(state.TokenBMint):
		return GetAmountOut(vaultB.Amount, vaultA.Amount, amountIn, feeNumerator)
	default:
		return 0, 0, fmt.Errorf("%w: %s is not in pool %s", ErrInvalidParams, inputMint, pool)
	}
}
