package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileBackend is a file-based implementation of Backend.
// Each key is stored as DATA_DIR/kv/<key>.json and replaced atomically
// (write to a temp file, then rename).
type FileBackend struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileBackend creates the kv directory under dataDir and returns a backend rooted there.
func NewFileBackend(dataDir string) (*FileBackend, error) {
	dir := filepath.Join(dataDir, "kv")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create kv directory: %w", err)
	}
	return &FileBackend{baseDir: dir}, nil
}

// Dir returns the directory holding the key files.
func (s *FileBackend) Dir() string { return s.baseDir }

// keyPath returns the filesystem path for a key.
func (s *FileBackend) keyPath(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	}
	return filepath.Join(s.baseDir, key+".json"), nil
}

func (s *FileBackend) GetString(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileBackend) SetString(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace key %s: %w", key, err)
	}
	return nil
}

func (s *FileBackend) Close() error { return nil }

var _ Backend = (*FileBackend)(nil)
