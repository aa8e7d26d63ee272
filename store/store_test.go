package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	pebbleStore, err := OpenPebble(filepath.Join(dir, "pebble"))
	require.NoError(t, err)
	levelStore, err := OpenLevelDB(filepath.Join(dir, "leveldb"))
	require.NoError(t, err)
	cached, err := NewCached(NewMemoryStore(), 4)
	require.NoError(t, err)

	backends := map[string]Store{
		"memory":  NewMemoryStore(),
		"pebble":  pebbleStore,
		"leveldb": levelStore,
		"cached":  cached,
	}
	t.Cleanup(func() {
		for _, s := range backends {
			_ = s.Close()
		}
	})
	return backends
}

func TestStoreReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Read(ctx, []byte("missing"))
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, s.Write(ctx, []byte("k"), []byte("v1")))
			val, err := s.Read(ctx, []byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), val)

			require.NoError(t, s.Write(ctx, []byte("k"), []byte("v2")))
			val, err = s.Read(ctx, []byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v2"), val)

			require.NoError(t, s.Delete(ctx, []byte("k")))
			_, err = s.Read(ctx, []byte("k"))
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestStoreBatchAndIterator(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Write(ctx, []byte("acct/z"), []byte("gone")))
			require.NoError(t, s.Batch(ctx, []BatchOperation{
				{Type: BatchPut, Key: []byte("acct/b"), Value: []byte("2")},
				{Type: BatchPut, Key: []byte("acct/a"), Value: []byte("1")},
				{Type: BatchPut, Key: []byte("rec/a"), Value: []byte("r")},
				{Type: BatchDelete, Key: []byte("acct/z")},
			}))

			prefix := []byte("acct/")
			it, err := s.Iterator(ctx, prefix, PrefixEnd(prefix))
			require.NoError(t, err)
			defer it.Close()

			var keys []string
			for it.Next() {
				keys = append(keys, string(it.Key()))
			}
			require.NoError(t, it.Error())
			assert.Equal(t, []string{"acct/a", "acct/b"}, keys)
		})
	}
}

func TestMemoryBatchRejectsUnknownOp(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	err := s.Batch(ctx, []BatchOperation{
		{Type: BatchPut, Key: []byte("a"), Value: []byte("1")},
		{Type: BatchOpType(9), Key: []byte("b")},
	})
	require.Error(t, err)

	_, err = s.Read(ctx, []byte("a"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestClosedStore(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())
	_, err := s.Read(context.Background(), []byte("a"))
	assert.ErrorIs(t, err, ErrDBClosed)
}

func TestCachedStats(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStore()
	c, err := NewCached(backing, 2)
	require.NoError(t, err)

	require.NoError(t, backing.Write(ctx, []byte("a"), []byte("1")))
	_, err = c.Read(ctx, []byte("a"))
	require.NoError(t, err)
	_, err = c.Read(ctx, []byte("a"))
	require.NoError(t, err)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	require.NoError(t, c.Batch(ctx, []BatchOperation{{Type: BatchPut, Key: []byte("a"), Value: []byte("2")}}))
	val, err := c.Read(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("acct0"), PrefixEnd([]byte("acct/")))
	assert.Equal(t, []byte{0x02}, PrefixEnd([]byte{0x01, 0xff}))
	assert.Nil(t, PrefixEnd([]byte{0xff}))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("rocks", "", 0)
	assert.Error(t, err)
}
