// Package save persists the chunk map to a key-value store.
package save

import (
	"errors"
	"fmt"

	"MinecraftGolang/config"
)

var ErrNotFound = errors.New("not found")

// Backend is the key-value store a save lives in.
type Backend interface {
	// WriteBatch stores every entry or none of them.
	WriteBatch(entries map[string][]byte) error
	// Iterate calls fn for each key starting with prefix, in key order. The
	// value is only valid during the call.
	Iterate(prefix string, fn func(key string, value []byte) error) error
	// Get returns ErrNotFound for a missing key.
	Get(key string) ([]byte, error)
	Close() error
}

// Open opens the backend the settings name, creating it in s.Dir if needed.
func Open(s config.SaveSettings) (Backend, error) {
	switch s.Backend {
	case config.BackendLevelDB:
		return OpenLevelDB(s.Dir)
	case config.BackendBadger:
		return OpenBadger(s.Dir)
	}
	return nil, fmt.Errorf("unknown save backend %q", s.Backend)
}
