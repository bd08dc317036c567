package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/httpx"
	"github.com/asad/kitchenstate/internal/logging"
)

// Service exposes the order repository over HTTP.
type Service struct {
	repo   *Repository
	logger logging.Logger
}

func NewService(repo *Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Name() string {
	return "order"
}

// RegisterRoutes mounts GET / (read, creating an empty order on first use)
// and PUT / (replace).
func (s *Service) RegisterRoutes(router chi.Router) {
	router.Get("/", s.handleGet)
	router.Put("/", s.handlePut)
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	data, err := s.repo.Init(r.Context())
	if err != nil {
		s.logger.Error("failed to read order", logging.ErrorField(err))
		status, code := httpx.ErrorStatus(err)
		httpx.WriteError(w, status, code, "Failed to read order")
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
		httpx.WriteError(w, http.StatusBadRequest, "InvalidInput", "Request body is not an order document")
		return
	}

	if err := s.repo.Save(r.Context(), data); err != nil {
		s.logger.Error("failed to save order", logging.ErrorField(err))
		status, code := httpx.ErrorStatus(err)
		httpx.WriteError(w, status, code, "Failed to save order")
		return
	}

	s.logger.Info("order saved", logging.Int("items", len(data.Items)))
	w.WriteHeader(http.StatusNoContent)
}

var _ core.Service = (*Service)(nil)
