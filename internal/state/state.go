// Package state owns the storage backend for a process and the three data
// repositories built on it. The CLI and the HTTP server both go through it.
package state

import (
	"context"
	"fmt"

	"github.com/asad/kitchenstate/internal/config"
	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/kv"
	"github.com/asad/kitchenstate/internal/logging"
	"github.com/asad/kitchenstate/internal/services/menu"
	"github.com/asad/kitchenstate/internal/services/order"
	"github.com/asad/kitchenstate/internal/services/recipe"
	"github.com/asad/kitchenstate/internal/services/static"
)

// State bundles the backend and the repositories that share it.
type State struct {
	Backend kv.Backend
	Menu    *menu.Repository
	Order   *order.Repository
	Recipe  *recipe.Repository

	// Assets holds dish images. Nil when no DATA_DIR is configured.
	Assets static.Store

	logger logging.Logger
	cancel context.CancelFunc
}

// Open opens the backend configured in cfg and builds the repositories.
// Background work started by the backend stops on Close.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (*State, error) {
	ctx, cancel := context.WithCancel(ctx)
	backend, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.StorageBackend, err)
	}

	logger.Info("storage backend ready", logging.String("backend", cfg.StorageBackend))

	st := New(backend, logger)
	st.cancel = cancel

	if cfg.DataDir != "" {
		assets, err := static.NewFileStore(cfg.DataDir)
		if err != nil {
			st.Close()
			return nil, err
		}
		st.Assets = assets
	}
	return st, nil
}

// New builds the repositories on an already opened backend.
func New(backend kv.Backend, logger logging.Logger, recipeOpts ...recipe.Option) *State {
	return &State{
		Backend: backend,
		Menu:    menu.NewRepository(backend, logger),
		Order:   order.NewRepository(backend, logger),
		Recipe:  recipe.NewRepository(backend, logger, recipeOpts...),
		logger:  logger,
	}
}

// Services returns the HTTP services for the three domains, plus the
// static asset service when an asset store is available.
func (s *State) Services() []core.Service {
	services := []core.Service{
		menu.NewService(s.Menu, s.logger),
		order.NewService(s.Order, s.logger),
		recipe.NewService(s.Recipe, s.logger),
	}
	if s.Assets != nil {
		services = append(services, static.NewService(s.Assets, s.logger))
	}
	return services
}

// Close stops background work and closes the backend.
func (s *State) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if err := s.Backend.Close(); err != nil {
		return fmt.Errorf("failed to close backend: %w", err)
	}
	return nil
}
