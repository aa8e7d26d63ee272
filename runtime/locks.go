package runtime

import (
	"bytes"
	"context"
	"sort"
	"sync"

	solanago "github.com/gagliardetto/solana-go"
)

type keyLock struct {
	ch   chan struct{}
	refs int
}

// lockTable hands out one exclusive lock per account key.
type lockTable struct {
	mu    sync.Mutex
	locks map[solanago.PublicKey]*keyLock
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[solanago.PublicKey]*keyLock)}
}

// sortKeys dedups keys and orders them so every caller acquires in the same order.
func sortKeys(keys []solanago.PublicKey) []solanago.PublicKey {
	seen := make(map[solanago.PublicKey]struct{}, len(keys))
	out := make([]solanago.PublicKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

func (t *lockTable) ref(key solanago.PublicKey) *keyLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		t.locks[key] = l
	}
	l.refs++
	return l
}

func (t *lockTable) unref(key solanago.PublicKey, l *keyLock) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(t.locks, key)
	}
}

// acquire locks keys in sorted order. The returned release must be called once.
func (t *lockTable) acquire(ctx context.Context, keys []solanago.PublicKey) (func(), error) {
	keys = sortKeys(keys)
	held := make([]*keyLock, 0, len(keys))

	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i].ch
			t.unref(keys[i], held[i])
		}
	}

	for _, k := range keys {
		l := t.ref(k)
		select {
		case l.ch <- struct{}{}:
			held = append(held, l)
		case <-ctx.Done():
			t.unref(k, l)
			release()
			return nil, ctx.Err()
		}
	}
	return release, nil
}
