package helpers

import (
	solanago "github.com/gagliardetto/solana-go"
)

var (
	LaunchpadProgramID = solanago.MustPublicKeyFromBase58("ip6SLxttjbSrQggmM2SH5RZXhWKq3onmkzj3kExoceN")

	// WrappedSolMint is the default quote asset.
	WrappedSolMint = solanago.SolMint
)

const (
	DefaultMemeDecimals  = 6
	DefaultQuoteDecimals = 9

	// DefaultSlippageBps is used by the CLI when no minimum output is given.
	DefaultSlippageBps = 100
)
