package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/store"
	"go.uber.org/zap"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrAccountNotLocked    = errors.New("account not locked by transaction")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnauthorized        = errors.New("authority does not own account")
	ErrAccountFrozen       = errors.New("account is frozen")
	ErrMintMismatch        = errors.New("token account mint mismatch")
	ErrTxClosed            = errors.New("transaction already finished")
)

var (
	accountPrefix = []byte("acct/")
	recordPrefix  = []byte("rec/")
)

func accountKey(addr solanago.PublicKey) []byte {
	return append(append([]byte{}, accountPrefix...), addr[:]...)
}

func recordKey(addr solanago.PublicKey) []byte {
	return append(append([]byte{}, recordPrefix...), addr[:]...)
}

// Runtime executes operations as all-or-nothing units over a Store. Operations that
// declare overlapping accounts are serialized, disjoint ones run in parallel.
type Runtime struct {
	store  store.Store
	locks  *lockTable
	logger *zap.Logger
}

func New(s store.Store, logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runtime{store: s, locks: newLockTable(), logger: logger}
}

func (r *Runtime) Store() store.Store {
	return r.store
}

// Execute locks keys, runs fn and commits its writes in one batch if fn returns nil.
// On any error nothing fn did is persisted.
func (r *Runtime) Execute(ctx context.Context, keys []solanago.PublicKey, fn func(tx *Tx) error) error {
	release, err := r.locks.acquire(ctx, keys)
	if err != nil {
		return err
	}
	defer release()

	tx := newTx(ctx, r, keys)
	defer tx.close()

	if err := fn(tx); err != nil {
		r.logger.Debug("transaction aborted", zap.Int("accounts", len(keys)), zap.Error(err))
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ops, err := tx.batch()
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}
	if err := r.store.Batch(ctx, ops); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	r.logger.Debug("transaction committed", zap.Int("accounts", len(keys)), zap.Int("writes", len(ops)))
	return nil
}

// Account reads a committed token account.
func (r *Runtime) Account(ctx context.Context, addr solanago.PublicKey) (*TokenAccount, error) {
	data, err := r.store.Read(ctx, accountKey(addr))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
		}
		return nil, err
	}
	return decodeTokenAccount(addr, data)
}

// Record reads committed record data.
func (r *Runtime) Record(ctx context.Context, addr solanago.PublicKey) ([]byte, error) {
	data, err := r.store.Read(ctx, recordKey(addr))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
		}
		return nil, err
	}
	return data, nil
}

// KeyedRecord is a record together with its address.
type KeyedRecord struct {
	Pubkey solanago.PublicKey
	Data   []byte
}

// Records returns every committed record matching all filters.
func (r *Runtime) Records(ctx context.Context, filters ...Memcmp) ([]KeyedRecord, error) {
	it, err := r.store.Iterator(ctx, recordPrefix, store.PrefixEnd(recordPrefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	out := make([]KeyedRecord, 0)
	for it.Next() {
		key := it.Key()
		if len(key) != len(recordPrefix)+solanago.PublicKeyLength {
			continue
		}
		data := it.Value()
		if !matchAll(data, filters) {
			continue
		}
		out = append(out, KeyedRecord{
			Pubkey: solanago.PublicKeyFromBytes(key[len(recordPrefix):]),
			Data:   data,
		})
	}
	return out, it.Error()
}

// Memcmp matches records whose bytes at Offset equal Bytes.
type Memcmp struct {
	Offset uint64
	Bytes  []byte
}

func matchAll(data []byte, filters []Memcmp) bool {
	for _, f := range filters {
		end := f.Offset + uint64(len(f.Bytes))
		if end > uint64(len(data)) || !bytes.Equal(data[f.Offset:end], f.Bytes) {
			return false
		}
	}
	return true
}
