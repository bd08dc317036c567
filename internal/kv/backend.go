// Package kv defines the string key-value port the data domains persist
// through, and the adapters that implement it.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/asad/kitchenstate/internal/config"
	"github.com/asad/kitchenstate/internal/logging"
)

// Backend is a synchronous string-keyed get/set store.
// Implementations must be safe for concurrent use.
type Backend interface {
	// GetString returns the value stored under key. ok is false when the key
	// has never been written.
	GetString(ctx context.Context, key string) (value string, ok bool, err error)

	// SetString stores value under key, replacing any previous value.
	SetString(ctx context.Context, key, value string) error

	// Close releases the resources held by the backend.
	Close() error
}

// ErrInvalidKey is returned for keys an adapter cannot store.
var ErrInvalidKey = errors.New("invalid key")

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}
	return nil
}

// Open builds the backend selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	case config.BackendFile:
		return NewFileBackend(cfg.DataDir)
	case config.BackendBadger:
		b, err := NewBadgerBackend(filepath.Join(cfg.DataDir, "badger"), logger)
		if err != nil {
			return nil, err
		}
		if cfg.BadgerGCInterval > 0 {
			b.StartGCRoutine(ctx, cfg.BadgerGCInterval)
		}
		return b, nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, filepath.Join(cfg.DataDir, "kitchenstate.db"))
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
