package menu

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/httpx"
	"github.com/asad/kitchenstate/internal/logging"
)

// Service exposes the menu repository over HTTP.
type Service struct {
	repo   *Repository
	logger logging.Logger
}

// NewService creates a new menu service instance.
func NewService(repo *Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string {
	return "menu"
}

// RegisterRoutes sets up HTTP routes for the menu:
//   - GET / - Read the menu, creating the default one on first use
//   - PUT / - Replace the menu
func (s *Service) RegisterRoutes(router chi.Router) {
	router.Get("/", s.handleGet)
	router.Put("/", s.handlePut)
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	data, err := s.repo.Init(r.Context())
	if err != nil {
		s.logger.Error("failed to read menu", logging.ErrorField(err))
		status, code := httpx.ErrorStatus(err)
		httpx.WriteError(w, status, code, "Failed to read menu")
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, data); err != nil {
		s.logger.Error("failed to encode response", logging.ErrorField(err))
	}
}

func (s *Service) handlePut(w http.ResponseWriter, r *http.Request) {
	httpx.LimitBody(w, r)
	defer r.Body.Close()

	var data Data
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "InvalidInput", "Request body is not a menu document")
		return
	}

	if err := s.repo.Save(r.Context(), data); err != nil {
		s.logger.Error("failed to save menu", logging.ErrorField(err))
		status, code := httpx.ErrorStatus(err)
		httpx.WriteError(w, status, code, "Failed to save menu")
		return
	}

	s.logger.Info("menu saved", logging.Int("dishes", len(data.Dishes)))
	w.WriteHeader(http.StatusNoContent)
}

var _ core.Service = (*Service)(nil)
