package core

import (
	"errors"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Errors shared by the data domains. Callers match them with errors.Is.
var (
	// ErrCorruptData reports stored text that does not decode to the expected shape.
	ErrCorruptData = errors.New("corrupt stored data")

	// ErrInvalidInput reports a write rejected by validation. Nothing is written.
	ErrInvalidInput = errors.New("invalid input")
)

// Service is the interface that every data domain exposed over HTTP implements.
type Service interface {
	// Name returns the unique identifier for this service (e.g. "menu", "recipe").
	// It doubles as the URL prefix and the ENABLED_SERVICES entry.
	Name() string

	// RegisterRoutes sets up HTTP routes for this service on the provided router.
	// The router is a sub-router scoped to this service's path prefix.
	RegisterRoutes(router chi.Router)
}

// Registry holds the services the edge router mounts.
type Registry struct {
	mu       sync.RWMutex
	services []Service
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a service to the registry.
func (r *Registry) Register(s Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services = append(r.services, s)
}

// Services returns the registered services in registration order.
func (r *Registry) Services() []Service {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Service, len(r.services))
	copy(out, r.services)
	return out
}
