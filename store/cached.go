package store

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached keeps recently read records in memory in front of another Store.
// Iteration always goes to the backing store.
type Cached struct {
	Store
	recent *lru.Cache[string, []byte]

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewCached(backing Store, size int) (*Cached, error) {
	if size <= 0 {
		size = 1024
	}
	recent, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cached{Store: backing, recent: recent}, nil
}

func (c *Cached) Read(ctx context.Context, key []byte) ([]byte, error) {
	if val, ok := c.recent.Get(string(key)); ok {
		c.hits.Add(1)
		return copyBytes(val), nil
	}
	c.misses.Add(1)

	val, err := c.Store.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	c.recent.Add(string(key), copyBytes(val))
	return val, nil
}

func (c *Cached) Write(ctx context.Context, key, value []byte) error {
	if err := c.Store.Write(ctx, key, value); err != nil {
		return err
	}
	c.recent.Add(string(key), copyBytes(value))
	return nil
}

func (c *Cached) Delete(ctx context.Context, key []byte) error {
	c.recent.Remove(string(key))
	return c.Store.Delete(ctx, key)
}

func (c *Cached) Batch(ctx context.Context, ops []BatchOperation) error {
	// drop first so a failed batch never leaves stale entries behind
	for _, op := range ops {
		c.recent.Remove(string(op.Key))
	}
	return c.Store.Batch(ctx, ops)
}

func (c *Cached) Close() error {
	c.recent.Purge()
	return c.Store.Close()
}

// Stats returns cache hits and misses since creation.
func (c *Cached) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
