package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDBClosed is returned when trying to operate on a closed store
	ErrDBClosed = errors.New("store is closed")

	// ErrKeyNotFound is returned when a key doesn't exist in the store
	ErrKeyNotFound = errors.New("key not found")
)

// Store defines the key value operations the launchpad runtime persists through
type Store interface {
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key []byte, value []byte) error
	Delete(ctx context.Context, key []byte) error

	// Batch applies all operations or none of them
	Batch(ctx context.Context, ops []BatchOperation) error

	// Iterator walks keys in [start, end)
	Iterator(ctx context.Context, start, end []byte) (Iterator, error)

	Close() error
}

// Iterator allows traversing over store entries
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// BatchOperation represents a single operation in a batch
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

type Backend string

const (
	BackendMemory  Backend = "memory"
	BackendPebble  Backend = "pebble"
	BackendLevelDB Backend = "leveldb"
)

// Open opens the backend at path. A positive cacheSize wraps it in a record cache.
func Open(backend Backend, path string, cacheSize int) (Store, error) {
	var (
		s   Store
		err error
	)
	switch backend {
	case BackendMemory, "":
		s = NewMemoryStore()
	case BackendPebble:
		s, err = OpenPebble(path)
	case BackendLevelDB:
		s, err = OpenLevelDB(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	if cacheSize > 0 {
		return NewCached(s, cacheSize)
	}
	return s, nil
}

// PrefixEnd returns the smallest key greater than every key with prefix.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
