package recipe

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/httpx"
	"github.com/asad/kitchenstate/internal/logging"
)

// Service exposes the recipe repository over HTTP.
type Service struct {
	repo   *Repository
	logger logging.Logger
}

// NewService creates a new recipe service instance.
func NewService(repo *Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string {
	return "recipe"
}

// RegisterRoutes sets up HTTP routes for recipe days:
//   - GET / - All stored days
//   - PUT / - Save today's recipes
//   - GET /{date} - One day, empty when nothing is stored
//   - PUT /{date} - Replace one day
func (s *Service) RegisterRoutes(router chi.Router) {
	router.Get("/", s.handleList)
	router.Put("/", s.handleSaveToday)
	router.Get("/{date}", s.handleGet)
	router.Put("/{date}", s.handleSave)
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	days, err := s.repo.Load(r.Context())
	if err != nil {
		s.writeRepoError(w, "failed to load recipes", err)
		return
	}
	if err := httpx.WriteJSON(w, http.StatusOK, days); err != nil {
		s.logger.Error("failed to encode response", logging.ErrorField(err))
	}
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	day, err := s.repo.GetByDate(r.Context(), date)
	if err != nil {
		s.writeRepoError(w, "failed to load recipe day", err, logging.String("date", date))
		return
	}
	if err := httpx.WriteJSON(w, http.StatusOK, day); err != nil {
		s.logger.Error("failed to encode response", logging.ErrorField(err))
	}
}

func (s *Service) handleSave(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	day, err := s.decodeDay(w, r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}
	if err := s.repo.SaveByDate(r.Context(), date, day); err != nil {
		s.writeRepoError(w, "failed to save recipe day", err, logging.String("date", date))
		return
	}

	s.logger.Info("recipe day saved",
		logging.String("date", date),
		logging.Int("items", len(day.Items)),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleSaveToday(w http.ResponseWriter, r *http.Request) {
	day, err := s.decodeDay(w, r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}
	if err := s.repo.SaveToday(r.Context(), day); err != nil {
		s.writeRepoError(w, "failed to save today's recipes", err)
		return
	}

	s.logger.Info("recipe day saved",
		logging.String("date", s.repo.Today()),
		logging.Int("items", len(day.Items)),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) decodeDay(w http.ResponseWriter, r *http.Request) (Day, error) {
	httpx.LimitBody(w, r)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return Day{}, fmt.Errorf("failed to read request body")
	}
	return DecodeDay(body)
}

func (s *Service) writeRepoError(w http.ResponseWriter, msg string, err error, fields ...logging.Field) {
	status, code := httpx.ErrorStatus(err)
	if errors.Is(err, core.ErrInvalidInput) {
		httpx.WriteError(w, status, code, err.Error())
		return
	}
	s.logger.Error(msg, append(fields, logging.ErrorField(err))...)
	httpx.WriteError(w, status, code, "Failed to access recipes")
}

var _ core.Service = (*Service)(nil)
