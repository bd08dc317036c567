package static

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when an asset does not exist.
var ErrNotFound = errors.New("asset not found")

// ErrInvalidName is returned for asset names that escape the store root.
var ErrInvalidName = errors.New("invalid asset name")

// Asset is a stored static file such as a dish image.
type Asset struct {
	// Name is the slash-separated path below the static root, e.g. "dishes/mapo.jpg".
	Name        string
	Content     []byte
	ContentType string
	Size        int64
	ModifiedAt  time.Time
}

// AssetInfo describes an asset without its content.
type AssetInfo struct {
	Name         string    `json:"name"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// Store holds the static files referenced by menu dishes.
type Store interface {
	Put(ctx context.Context, name string, content []byte) error
	Get(ctx context.Context, name string) (*Asset, error)
	Delete(ctx context.Context, name string) error
	// List returns assets whose name starts with prefix, at most maxResults when positive.
	List(ctx context.Context, prefix string, maxResults int) ([]AssetInfo, error)
}

// FileStore keeps assets as files under DATA_DIR/static/<name>.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates the static directory under dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	dir := filepath.Join(dataDir, "static")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create static directory: %w", err)
	}
	return &FileStore{baseDir: dir}, nil
}

// assetPath maps a slash-separated asset name to a path inside baseDir.
func (s *FileStore) assetPath(name string) (string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" || strings.Contains(name, `\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (s *FileStore) Put(ctx context.Context, name string, content []byte) error {
	p, err := s.assetPath(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	if err := os.WriteFile(p, content, 0644); err != nil {
		return fmt.Errorf("failed to write asset: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, name string) (*Asset, error) {
	p, err := s.assetPath(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		if err == nil || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat asset: %w", err)
	}
	content, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}

	return &Asset{
		Name:        name,
		Content:     content,
		ContentType: contentTypeFor(name),
		Size:        info.Size(),
		ModifiedAt:  info.ModTime(),
	}, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	p, err := s.assetPath(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context, prefix string, maxResults int) ([]AssetInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []AssetInfo{}
	err := filepath.WalkDir(s.baseDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			return nil
		}
		if maxResults > 0 && len(results) >= maxResults {
			return filepath.SkipAll
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		results = append(results, AssetInfo{
			Name:         name,
			ContentType:  contentTypeFor(name),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return results, nil
}

var _ Store = (*FileStore)(nil)
