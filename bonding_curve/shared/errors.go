package shared

import (
	"errors"
	"fmt"
)

var (
	ErrZeroAmount        = errors.New("amount is zero")
	ErrPoolLocked        = errors.New("pool is locked")
	ErrSlippageExceeded  = errors.New("slippage exceeded")
	ErrMintMismatch      = errors.New("invalid token mints")
	ErrArithmeticFault   = errors.New("arithmetic fault")
	ErrAlreadyMigrated   = errors.New("pool already migrated")
	ErrOrderingViolation = errors.New("token mints not in canonical order")
	ErrCreationFailure   = errors.New("destination pool creation failed")

	ErrThresholdNotReached = errors.New("migration threshold not reached")
	ErrInvalidConfig       = errors.New("invalid pool config")
	ErrPoolNotFound        = errors.New("pool not found")
	ErrPoolExists          = errors.New("pool already exists")
	ErrTargetNotFound      = errors.New("target config not found")
	ErrTargetExists        = errors.New("target config already exists")
)

// ArithmeticFault wraps ErrArithmeticFault with the failing operation.
func ArithmeticFault(msg string) error {
	return fmt.Errorf("%w: %s", ErrArithmeticFault, msg)
}
