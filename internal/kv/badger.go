package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/asad/kitchenstate/internal/logging"
)

// BadgerBackend stores keys in an embedded BadgerDB.
type BadgerBackend struct {
	db     *badger.DB
	logger logging.Logger
}

// NewBadgerBackend opens (or creates) a BadgerDB at dir.
func NewBadgerBackend(dir string, logger logging.Logger) (*BadgerBackend, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	opts := badger.DefaultOptions(absPath)
	opts.Logger = nil

	return openBadger(opts, logger)
}

// NewInMemoryBadgerBackend opens a BadgerDB that never touches disk.
func NewInMemoryBadgerBackend(logger logging.Logger) (*BadgerBackend, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts, logger)
}

func openBadger(opts badger.Options, logger logging.Logger) (*BadgerBackend, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}
	logger.Info("badger backend opened",
		logging.String("dir", opts.Dir),
		logging.Bool("in_memory", opts.InMemory),
	)
	return &BadgerBackend{db: db, logger: logger}, nil
}

func (s *BadgerBackend) GetString(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *BadgerBackend) SetString(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// RunGC runs one value-log garbage collection pass.
func (s *BadgerBackend) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}

// StartGCRoutine runs RunGC every interval until ctx is done.
func (s *BadgerBackend) StartGCRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// ErrNoRewrite only means there was nothing to collect.
				if err := s.RunGC(); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
					s.logger.Error("badger gc failed", logging.ErrorField(err))
				}
			}
		}
	}()
	s.logger.Info("badger gc routine started", logging.Duration("interval", interval))
}

func (s *BadgerBackend) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ Backend = (*BadgerBackend)(nil)
