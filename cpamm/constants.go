package cpamm

import (
	"errors"

	solanago "github.com/gagliardetto/solana-go"
)

var (
	ProgramID = solanago.MustPublicKeyFromBase58("cpamdpZCGKUy5JxQXB4dcpGPiikHawvSWAd6mEn1sGG")
)

// AccountKeyPool is the discriminator name of pool records
const AccountKeyPool = "Pool"

const (
	ScaleOffset = 64

	BasisPointMax  = 10_000
	FeeDenominator = 1_000_000_000
)

var (
	ErrInvalidParams     = errors.New("invalid create pool params")
	ErrNotCanonicalOrder = errors.New("token mints are not in canonical order")
	ErrPoolExists        = errors.New("pool already exists")
	ErrPoolNotFound      = errors.New("pool not found")
	ErrZeroLiquidity     = errors.New("liquidity is zero")
)
