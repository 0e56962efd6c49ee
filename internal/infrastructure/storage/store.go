package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when a key was never stored.
var ErrNotFound = errors.New("storage: key not found")

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is a flat string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Open returns the backend named by kind. path is ignored for memory.
func Open(kind, path string) (Store, error) {
	switch kind {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(path)
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", kind)
	}
}
