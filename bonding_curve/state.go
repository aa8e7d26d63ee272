package bonding_curve

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/helpers"
	"github.com/krazyTry/launchpad-go/bonding_curve/math"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/runtime"
)

type StateService struct {
	*LaunchpadProgram
}

func NewStateService(program *LaunchpadProgram) *StateService {
	return &StateService{LaunchpadProgram: program}
}

func (s *StateService) GetPool(ctx context.Context, poolAddress solanago.PublicKey) (*BoundPool, error) {
	return s.loadPool(ctx, poolAddress)
}

func (s *StateService) GetPoolByMints(ctx context.Context, memeMint, quoteMint solanago.PublicKey) (*BoundPool, error) {
	return s.loadPool(ctx, helpers.DerivePoolAddress(memeMint, quoteMint))
}

// GetPools lists every bonding curve pool.
func (s *StateService) GetPools(ctx context.Context) ([]ProgramAccount[BoundPool], error) {
	return s.getPools(ctx)
}

// GetPoolsByCreator lists the pools created by creator.
func (s *StateService) GetPoolsByCreator(ctx context.Context, creator solanago.PublicKey) ([]ProgramAccount[BoundPool], error) {
	return s.getPools(ctx, runtime.Memcmp{Offset: creatorOffset, Bytes: creator.Bytes()})
}

// creatorOffset is the byte offset of CreatorAddr in an encoded BoundPool:
// discriminator, two reserves (u64 + 2 keys), two fee counters, fee vault.
const creatorOffset = shared.DiscriminatorSize + 2*(8+32+32) + 8 + 8 + 32

func (s *StateService) getPools(ctx context.Context, filters ...runtime.Memcmp) ([]ProgramAccount[BoundPool], error) {
	disc := shared.AccountDiscriminator(shared.AccountKeyBoundPool)
	filters = append([]runtime.Memcmp{{Offset: 0, Bytes: disc[:]}}, filters...)

	records, err := s.Runtime.Records(ctx, filters...)
	if err != nil {
		return nil, err
	}
	out := make([]ProgramAccount[BoundPool], 0, len(records))
	for _, r := range records {
		pool, err := shared.ParseAccountBoundPool(r.Data)
		if err != nil {
			return nil, fmt.Errorf("decode pool %s: %w", r.Pubkey, err)
		}
		out = append(out, ProgramAccount[BoundPool]{Pubkey: r.Pubkey, Account: pool})
	}
	return out, nil
}

func (s *StateService) GetTargetConfig(ctx context.Context, tokenMint, pairTokenMint solanago.PublicKey) (*TargetConfig, error) {
	address := helpers.DeriveTargetConfigAddress(tokenMint, pairTokenMint)
	data, err := s.Runtime.Record(ctx, address)
	if err != nil {
		if errors.Is(err, runtime.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrTargetNotFound, address)
		}
		return nil, err
	}
	return shared.ParseAccountTargetConfig(data)
}

// GetPoolInfo projects a pool into its status and migration progress.
func (s *StateService) GetPoolInfo(ctx context.Context, poolAddress solanago.PublicKey) (*PoolInfo, error) {
	pool, err := s.loadPool(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	sold, err := pool.Sold()
	if err != nil {
		return nil, err
	}
	progress, err := math.GetMigrationProgress(pool)
	if err != nil {
		return nil, err
	}
	return &PoolInfo{
		Address:  poolAddress,
		Pool:     pool,
		Status:   pool.Status(),
		Sold:     sold,
		Progress: progress,
	}, nil
}

func (s *StateService) GetPoolStatus(ctx context.Context, poolAddress solanago.PublicKey) (PoolStatus, error) {
	pool, err := s.loadPool(ctx, poolAddress)
	if err != nil {
		return 0, err
	}
	return pool.Status(), nil
}

// GetTokenBalance returns the balance of a token account.
func (s *StateService) GetTokenBalance(ctx context.Context, account solanago.PublicKey) (uint64, error) {
	acc, err := s.Runtime.Account(ctx, account)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}
