package runtime

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
)

// Authority is the capability to debit accounts owned by its key. It can only be
// obtained from a signer key or by deriving a program address.
type Authority struct {
	key     solanago.PublicKey
	program bool
}

func SignerAuthority(key solanago.PublicKey) Authority {
	return Authority{key: key}
}

// ProgramAuthority derives the program address for seeds and returns it as an authority.
func ProgramAuthority(programID solanago.PublicKey, seeds ...[]byte) (Authority, error) {
	key, _, err := solanago.FindProgramAddress(seeds, programID)
	if err != nil {
		return Authority{}, fmt.Errorf("derive program authority: %w", err)
	}
	return Authority{key: key, program: true}, nil
}

func (a Authority) PublicKey() solanago.PublicKey {
	return a.key
}

func (a Authority) IsProgram() bool {
	return a.program
}

func (a Authority) String() string {
	return a.key.String()
}
