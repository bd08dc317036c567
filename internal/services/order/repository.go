package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/kv"
	"github.com/asad/kitchenstate/internal/logging"
)

// Repository reads and writes the order document under StorageKey.
type Repository struct {
	backend kv.Backend
	logger  logging.Logger
}

// NewRepository creates an order repository on top of backend.
func NewRepository(backend kv.Backend, logger logging.Logger) *Repository {
	return &Repository{
		backend: backend,
		logger:  logger.With(logging.String("domain", "order")),
	}
}

// Init returns the stored order, writing an empty one first if none exists.
// Undecodable stored text is reported as core.ErrCorruptData.
func (r *Repository) Init(ctx context.Context) (Data, error) {
	raw, ok, err := r.backend.GetString(ctx, StorageKey)
	if err != nil {
		return Data{}, fmt.Errorf("read order: %w", err)
	}

	if !ok || raw == "" {
		def := Default()
		if err := r.Save(ctx, def); err != nil {
			return Data{}, err
		}
		r.logger.Debug("order initialized empty")
		return def, nil
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return Data{}, fmt.Errorf("decode order: %w: %v", core.ErrCorruptData, err)
	}
	if data.Items == nil {
		data.Items = []Item{}
	}
	return data, nil
}

// Save replaces the stored order with data.
func (r *Repository) Save(ctx context.Context, data Data) error {
	if data.Items == nil {
		data.Items = []Item{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	if err := r.backend.SetString(ctx, StorageKey, string(encoded)); err != nil {
		return fmt.Errorf("write order: %w", err)
	}
	return nil
}
