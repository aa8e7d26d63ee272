package runtime

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// TokenAccount holds a balance of one mint on behalf of Owner.
type TokenAccount struct {
	Address solanago.PublicKey

	// Mint associated with the account
	Mint solanago.PublicKey

	// Owner is the only authority that may debit the account
	Owner solanago.PublicKey

	// Number of tokens the account holds
	Amount uint64

	State AccountState
}

func (a *TokenAccount) IsFrozen() bool {
	return a.State == AccountStateFrozen
}

type tokenAccountLayout struct {
	Mint   solanago.PublicKey
	Owner  solanago.PublicKey
	Amount uint64
	State  uint8
}

func encodeTokenAccount(a *TokenAccount) ([]byte, error) {
	var buf bytes.Buffer
	raw := tokenAccountLayout{Mint: a.Mint, Owner: a.Owner, Amount: a.Amount, State: uint8(a.State)}
	if err := binary.NewBorshEncoder(&buf).Encode(&raw); err != nil {
		return nil, fmt.Errorf("encode token account %s: %w", a.Address, err)
	}
	return buf.Bytes(), nil
}

func decodeTokenAccount(address solanago.PublicKey, data []byte) (*TokenAccount, error) {
	raw := tokenAccountLayout{}
	if err := binary.NewBorshDecoder(data).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode token account %s: %w", address, err)
	}
	return &TokenAccount{
		Address: address,
		Mint:    raw.Mint,
		Owner:   raw.Owner,
		Amount:  raw.Amount,
		State:   AccountState(raw.State),
	}, nil
}
