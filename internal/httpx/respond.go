package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asad/kitchenstate/internal/core"
)

// maxBodyBytes caps request bodies accepted by the data services.
const maxBodyBytes = 1 << 20

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes an error response in a consistent format.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorStatus maps an accessor error to an HTTP status and error code.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest, "InvalidInput"
	case errors.Is(err, core.ErrCorruptData):
		return http.StatusInternalServerError, "CorruptData"
	default:
		return http.StatusInternalServerError, "InternalError"
	}
}

// LimitBody caps the request body size for the handlers that decode JSON.
func LimitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
}
