package httpx_test

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asad/kitchenstate/internal/config"
	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/httpx"
	"github.com/asad/kitchenstate/internal/kv"
	"github.com/asad/kitchenstate/internal/logging"
	"github.com/asad/kitchenstate/internal/state"
)

func setupTestRouter(t *testing.T, enabled ...string) http.Handler {
	t.Helper()
	logger := logging.NewNop()
	st := state.New(kv.NewMemoryBackend(), logger)

	registry := core.NewRegistry()
	for _, svc := range st.Services() {
		registry.Register(svc)
	}
	cfg := &config.Config{EdgePort: 8080, StorageBackend: config.BackendMemory, EnabledServices: enabled}
	return httpx.NewEdgeRouter(cfg, registry, logger)
}

func TestEdgeRouter_Health(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestEdgeRouter_MountsEnabledServices(t *testing.T) {
	router := setupTestRouter(t, "menu", "recipe")

	tests := []struct {
		method, path string
		body         string
		want         int
	}{
		{"GET", "/menu", "", http.StatusOK},
		{"GET", "/recipe", "", http.StatusOK},
		{"PUT", "/recipe/2024-01-01", `{"items":[1,2]}`, http.StatusNoContent},
		{"GET", "/recipe/2024-01-01", "", http.StatusOK},
		{"GET", "/order", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("save: %w", core.ErrInvalidInput), http.StatusBadRequest, "InvalidInput"},
		{fmt.Errorf("decode: %w", core.ErrCorruptData), http.StatusInternalServerError, "CorruptData"},
		{errors.New("disk full"), http.StatusInternalServerError, "InternalError"},
	}
	for _, tt := range tests {
		status, code := httpx.ErrorStatus(tt.err)
		if status != tt.wantStatus || code != tt.wantCode {
			t.Errorf("ErrorStatus(%v) = %d %s, want %d %s", tt.err, status, code, tt.wantStatus, tt.wantCode)
		}
	}
}
