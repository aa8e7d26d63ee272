package runtime

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/store"
)

// Tx stages writes of one operation. Reads see staged writes first.
type Tx struct {
	ctx      context.Context
	rt       *Runtime
	writable map[solanago.PublicKey]struct{}
	accounts map[solanago.PublicKey]*TokenAccount
	records  map[solanago.PublicKey][]byte
	order    []solanago.PublicKey
	done     bool
}

func newTx(ctx context.Context, rt *Runtime, keys []solanago.PublicKey) *Tx {
	writable := make(map[solanago.PublicKey]struct{}, len(keys))
	for _, k := range keys {
		writable[k] = struct{}{}
	}
	return &Tx{
		ctx:      ctx,
		rt:       rt,
		writable: writable,
		accounts: make(map[solanago.PublicKey]*TokenAccount),
		records:  make(map[solanago.PublicKey][]byte),
	}
}

func (tx *Tx) Context() context.Context {
	return tx.ctx
}

func (tx *Tx) close() {
	tx.done = true
}

func (tx *Tx) checkWritable(addr solanago.PublicKey) error {
	if tx.done {
		return ErrTxClosed
	}
	if _, ok := tx.writable[addr]; !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotLocked, addr)
	}
	return nil
}

func (tx *Tx) touch(addr solanago.PublicKey) {
	if _, ok := tx.accounts[addr]; ok {
		return
	}
	if _, ok := tx.records[addr]; ok {
		return
	}
	tx.order = append(tx.order, addr)
}

// Account returns a copy of the token account as seen by this transaction.
func (tx *Tx) Account(addr solanago.PublicKey) (*TokenAccount, error) {
	if tx.done {
		return nil, ErrTxClosed
	}
	if acc, ok := tx.accounts[addr]; ok {
		cp := *acc
		return &cp, nil
	}
	return tx.rt.Account(tx.ctx, addr)
}

func (tx *Tx) AccountExists(addr solanago.PublicKey) (bool, error) {
	_, err := tx.Account(addr)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (tx *Tx) stageAccount(acc *TokenAccount) {
	tx.touch(acc.Address)
	tx.accounts[acc.Address] = acc
}

// CreateAccount opens an empty token account for mint owned by owner.
func (tx *Tx) CreateAccount(addr, mint, owner solanago.PublicKey) (*TokenAccount, error) {
	if err := tx.checkWritable(addr); err != nil {
		return nil, err
	}
	exists, err := tx.AccountExists(addr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrAccountExists, addr)
	}
	acc := &TokenAccount{Address: addr, Mint: mint, Owner: owner, State: AccountStateInitialized}
	tx.stageAccount(acc)
	cp := *acc
	return &cp, nil
}

// MintTo credits newly issued tokens to addr.
func (tx *Tx) MintTo(addr solanago.PublicKey, amount uint64) error {
	if err := tx.checkWritable(addr); err != nil {
		return err
	}
	acc, err := tx.Account(addr)
	if err != nil {
		return err
	}
	if acc.Amount > ^uint64(0)-amount {
		return fmt.Errorf("mint to %s: balance overflow", addr)
	}
	acc.Amount += amount
	tx.stageAccount(acc)
	return nil
}

// Transfer moves amount from one account to another of the same mint. authority
// must own from.
func (tx *Tx) Transfer(from, to solanago.PublicKey, authority Authority, amount uint64) error {
	if err := tx.checkWritable(from); err != nil {
		return err
	}
	if err := tx.checkWritable(to); err != nil {
		return err
	}
	src, err := tx.Account(from)
	if err != nil {
		return err
	}
	dst, err := tx.Account(to)
	if err != nil {
		return err
	}
	if !src.Mint.Equals(dst.Mint) {
		return fmt.Errorf("%w: %s -> %s", ErrMintMismatch, src.Mint, dst.Mint)
	}
	if src.IsFrozen() || dst.IsFrozen() {
		return ErrAccountFrozen
	}
	if !src.Owner.Equals(authority.PublicKey()) {
		return fmt.Errorf("%w: %s is owned by %s", ErrUnauthorized, from, src.Owner)
	}
	if src.Amount < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, from, src.Amount, amount)
	}
	if from.Equals(to) || amount == 0 {
		return nil
	}
	if dst.Amount > ^uint64(0)-amount {
		return fmt.Errorf("transfer to %s: balance overflow", to)
	}
	src.Amount -= amount
	dst.Amount += amount
	tx.stageAccount(src)
	tx.stageAccount(dst)
	return nil
}

// Record returns record data as seen by this transaction.
func (tx *Tx) Record(addr solanago.PublicKey) ([]byte, error) {
	if tx.done {
		return nil, ErrTxClosed
	}
	if data, ok := tx.records[addr]; ok {
		return append([]byte{}, data...), nil
	}
	return tx.rt.Record(tx.ctx, addr)
}

func (tx *Tx) RecordExists(addr solanago.PublicKey) (bool, error) {
	_, err := tx.Record(addr)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (tx *Tx) PutRecord(addr solanago.PublicKey, data []byte) error {
	if err := tx.checkWritable(addr); err != nil {
		return err
	}
	tx.touch(addr)
	tx.records[addr] = append([]byte{}, data...)
	return nil
}

func (tx *Tx) batch() ([]store.BatchOperation, error) {
	ops := make([]store.BatchOperation, 0, len(tx.order))
	for _, addr := range tx.order {
		if acc, ok := tx.accounts[addr]; ok {
			data, err := encodeTokenAccount(acc)
			if err != nil {
				return nil, err
			}
			ops = append(ops, store.BatchOperation{Type: store.BatchPut, Key: accountKey(addr), Value: data})
		}
		if data, ok := tx.records[addr]; ok {
			ops = append(ops, store.BatchOperation{Type: store.BatchPut, Key: recordKey(addr), Value: data})
		}
	}
	return ops, nil
}
