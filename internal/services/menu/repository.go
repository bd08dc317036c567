package menu

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/kv"
	"github.com/asad/kitchenstate/internal/logging"
)

// Repository reads and writes the menu document under StorageKey.
type Repository struct {
	backend kv.Backend
	logger  logging.Logger
}

// NewRepository creates a menu repository on top of backend.
func NewRepository(backend kv.Backend, logger logging.Logger) *Repository {
	return &Repository{
		backend: backend,
		logger:  logger.With(logging.String("domain", "menu")),
	}
}

// Init returns the stored menu. When nothing is stored yet it writes
// Default() and returns it. A stored value that does not decode is reported
// as core.ErrCorruptData.
func (r *Repository) Init(ctx context.Context) (Data, error) {
	raw, ok, err := r.backend.GetString(ctx, StorageKey)
	if err != nil {
		return Data{}, fmt.Errorf("read menu: %w", err)
	}

	if !ok || raw == "" {
		def := Default()
		if err := r.Save(ctx, def); err != nil {
			return Data{}, err
		}
		r.logger.Info("menu initialized with defaults", logging.Int("dishes", len(def.Dishes)))
		return def, nil
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return Data{}, fmt.Errorf("decode menu: %w: %v", core.ErrCorruptData, err)
	}
	if data.Dishes == nil {
		data.Dishes = []Dish{}
	}
	return data, nil
}

// Save replaces the stored menu with data.
func (r *Repository) Save(ctx context.Context, data Data) error {
	if data.Dishes == nil {
		data.Dishes = []Dish{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}
	if err := r.backend.SetString(ctx, StorageKey, string(encoded)); err != nil {
		return fmt.Errorf("write menu: %w", err)
	}
	return nil
}
