package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/asad/kitchenstate/internal/config"
	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/logging"
)

// EdgeRouter is the main HTTP router that receives all incoming requests
// and dispatches them to the data services under /<service name>.
type EdgeRouter struct {
	router chi.Router
	cfg    *config.Config
	logger logging.Logger
}

// NewEdgeRouter creates and configures a new edge router instance.
// Every registered service that cfg enables is mounted under its name.
func NewEdgeRouter(cfg *config.Config, registry *core.Registry, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check endpoint - always available regardless of enabled services
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"kitchenstate"}`))
	})

	for _, service := range registry.Services() {
		if !cfg.IsServiceEnabled(service.Name()) {
			logger.Info("skipping service (not enabled)",
				logging.String("service", service.Name()),
			)
			continue
		}

		logger.Info("registering service routes",
			logging.String("service", service.Name()),
		)
		r.Route("/"+service.Name(), func(r chi.Router) {
			service.RegisterRoutes(r)
		})
	}

	return &EdgeRouter{
		router: r,
		cfg:    cfg,
		logger: logger,
	}
}

// ServeHTTP implements http.Handler interface.
func (er *EdgeRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	er.router.ServeHTTP(w, r)
}

// requestLoggingMiddleware logs method, path, status code and latency for every request.
func requestLoggingMiddleware(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.String("query", r.URL.RawQuery),
				logging.Int("status", ww.Status()),
				logging.Duration("latency", time.Since(start)),
				logging.String("request_id", middleware.GetReqID(r.Context())),
				logging.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
