package static

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/httpx"
	"github.com/asad/kitchenstate/internal/logging"
)

// maxAssetBytes caps uploaded asset size.
const maxAssetBytes = 8 << 20

// Service serves the files menu dishes point at (Dish.Image is "/static/<name>").
type Service struct {
	store  Store
	logger logging.Logger
}

// NewService creates a new static asset service instance.
func NewService(store Store, logger logging.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Name returns the service identifier. It is also the URL prefix dish images use.
func (s *Service) Name() string {
	return "static"
}

// RegisterRoutes sets up HTTP routes for assets:
//   - GET / - List assets (?prefix=dishes/&maxresults=N)
//   - GET /{name} - Download an asset
//   - PUT /{name} - Upload or replace an asset
//   - DELETE /{name} - Delete an asset
func (s *Service) RegisterRoutes(router chi.Router) {
	router.Get("/", s.handleList)
	router.Get("/*", s.handleGet)
	router.Put("/*", s.handlePut)
	router.Delete("/*", s.handleDelete)
}

func (s *Service) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	r.Body = http.MaxBytesReader(w, r.Body, maxAssetBytes)
	defer r.Body.Close()
	content, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "InvalidInput", "Failed to read request body")
		return
	}

	if err := s.store.Put(r.Context(), name, content); err != nil {
		s.writeStoreError(w, "failed to put asset", name, err)
		return
	}

	s.logger.Info("asset uploaded",
		logging.String("asset", name),
		logging.Int("size", len(content)),
	)
	w.WriteHeader(http.StatusCreated)
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	asset, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeStoreError(w, "failed to get asset", name, err)
		return
	}

	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(asset.Size, 10))
	w.Header().Set("Last-Modified", asset.ModifiedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	w.Write(asset.Content)
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeStoreError(w, "failed to delete asset", name, err)
		return
	}

	s.logger.Info("asset deleted", logging.String("asset", name))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	maxResults := 0
	if v := r.URL.Query().Get("maxresults"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxResults = n
		}
	}

	assets, err := s.store.List(r.Context(), prefix, maxResults)
	if err != nil {
		s.writeStoreError(w, "failed to list assets", prefix, err)
		return
	}
	if err := httpx.WriteJSON(w, http.StatusOK, assets); err != nil {
		s.logger.Error("failed to encode response", logging.ErrorField(err))
	}
}

func (s *Service) writeStoreError(w http.ResponseWriter, msg, name string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "AssetNotFound", err.Error())
	case errors.Is(err, ErrInvalidName):
		httpx.WriteError(w, http.StatusBadRequest, "InvalidInput", err.Error())
	default:
		s.logger.Error(msg,
			logging.String("asset", name),
			logging.ErrorField(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to access asset")
	}
}

var _ core.Service = (*Service)(nil)
