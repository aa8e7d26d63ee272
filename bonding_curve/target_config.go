package bonding_curve

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/helpers"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/krazyTry/launchpad-go/events"
	"github.com/krazyTry/launchpad-go/runtime"
	"go.uber.org/zap"
)

type TargetConfigService struct {
	*LaunchpadProgram
	State *StateService
}

func NewTargetConfigService(program *LaunchpadProgram) *TargetConfigService {
	return &TargetConfigService{
		LaunchpadProgram: program,
		State:            NewStateService(program),
	}
}

// InitTargetConfig records the raise target for a token pair. A pair has at
// most one target.
func (s *TargetConfigService) InitTargetConfig(ctx context.Context, params InitTargetConfigParams) (solanago.PublicKey, error) {
	if err := helpers.ValidateMints(params.TokenMint, params.PairTokenMint); err != nil {
		return solanago.PublicKey{}, err
	}
	if params.TokenTargetAmount == 0 {
		return solanago.PublicKey{}, shared.ErrZeroAmount
	}

	address := helpers.DeriveTargetConfigAddress(params.TokenMint, params.PairTokenMint)
	config := &TargetConfig{
		TokenTargetAmount: params.TokenTargetAmount,
		TokenMint:         params.TokenMint,
		PairTokenMint:     params.PairTokenMint,
	}
	err := s.Runtime.Execute(ctx, []solanago.PublicKey{address}, func(tx *runtime.Tx) error {
		exists, err := tx.RecordExists(address)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", shared.ErrTargetExists, address)
		}
		data, err := config.Marshal()
		if err != nil {
			return err
		}
		return tx.PutRecord(address, data)
	})
	if err != nil {
		return solanago.PublicKey{}, err
	}

	s.Logger.Info("target config initialized",
		zap.Stringer("config", address),
		zap.Stringer("tokenMint", params.TokenMint),
		zap.Stringer("pairTokenMint", params.PairTokenMint),
		zap.Uint64("target", params.TokenTargetAmount),
	)
	s.emit(ctx, events.Event{Kind: events.KindTargetConfig, Pool: address, AmountIn: params.TokenTargetAmount})
	return address, nil
}
