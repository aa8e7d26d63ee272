package store

import (
	"context"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type LevelDBStore struct {
	db *leveldb.DB
}

func OpenLevelDB(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

func (l *LevelDBStore) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, ErrDBClosed
	}
	val, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (l *LevelDBStore) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return ErrDBClosed
	}
	return l.db.Put(key, value, &opt.WriteOptions{Sync: true})
}

func (l *LevelDBStore) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return ErrDBClosed
	}
	return l.db.Delete(key, &opt.WriteOptions{Sync: true})
}

func (l *LevelDBStore) Batch(ctx context.Context, ops []BatchOperation) error {
	if l.db == nil {
		return ErrDBClosed
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			batch.Put(op.Key, op.Value)
		case BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}
	return l.db.Write(batch, &opt.WriteOptions{Sync: true})
}

func (l *LevelDBStore) Iterator(ctx context.Context, start, end []byte) (Iterator, error) {
	if l.db == nil {
		return nil, ErrDBClosed
	}
	iter := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &levelDBIterator{iter: iter}, nil
}

func (l *LevelDBStore) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

type levelDBIterator struct {
	iter iterator.Iterator
}

func (it *levelDBIterator) Next() bool    { return it.iter.Next() }
func (it *levelDBIterator) Key() []byte   { return copyBytes(it.iter.Key()) }
func (it *levelDBIterator) Value() []byte { return copyBytes(it.iter.Value()) }
func (it *levelDBIterator) Error() error  { return it.iter.Error() }

func (it *levelDBIterator) Close() error {
	it.iter.Release()
	return nil
}
