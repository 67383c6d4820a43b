package save

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type levelBackend struct {
	db *leveldb.DB
}

func OpenLevelDB(path string) (Backend, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &levelBackend{db: db}, nil
}

// OpenLevelDBMemory keeps everything in memory. Used by tests.
func OpenLevelDBMemory() (Backend, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb in memory: %w", err)
	}
	return &levelBackend{db: db}, nil
}

func (b *levelBackend) WriteBatch(entries map[string][]byte) error {
	batch := new(leveldb.Batch)
	for k, v := range entries {
		batch.Put([]byte(k), v)
	}
	return b.db.Write(batch, &opt.WriteOptions{Sync: true})
}

func (b *levelBackend) Iterate(prefix string, fn func(string, []byte) error) error {
	iter := b.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()
	for iter.Next() {
		if err := fn(string(iter.Key()), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (b *levelBackend) Get(key string) ([]byte, error) {
	v, err := b.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return v, err
}

func (b *levelBackend) Close() error {
	return b.db.Close()
}
