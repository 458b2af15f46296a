// Package api provides the HTTP API server and handlers for CineList.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinelist/cinelist-server/internal/ratelimit"
	"github.com/cinelist/cinelist-server/internal/sse"
	"github.com/cinelist/cinelist-server/internal/store"
	"github.com/cinelist/cinelist-server/internal/validation"
)

const (
	apiTitle   = "CineList API"
	apiVersion = "1.0.0"

	eventsPath = "/api/v1/events"
)

// Options configures the parts of the server that vary between deployments and tests.
type Options struct {
	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string
	// Registry receives the HTTP metrics and is served at /metrics. Nil disables both.
	Registry *prometheus.Registry
	// LoginRatePerMinute caps sign-in attempts per client IP (default 20).
	LoginRatePerMinute int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.UserStore
	services     *Services
	sseManager   *sse.Manager
	router       *chi.Mux
	api          huma.API
	validator    *validation.Validator
	loginLimiter *ratelimit.KeyedRateLimiter
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(userStore store.UserStore, services *Services, sseManager *sse.Manager, opts Options, logger *slog.Logger) *Server {
	perMinute := opts.LoginRatePerMinute
	if perMinute <= 0 {
		perMinute = 20
	}

	s := &Server{
		store:        userStore,
		services:     services,
		sseManager:   sseManager,
		router:       chi.NewRouter(),
		validator:    validation.New(),
		loginLimiter: ratelimit.New(float64(perMinute)/time.Minute.Seconds(), perMinute),
		logger:       logger,
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig(apiTitle, apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerProfileRoutes()
	s.registerListRoutes()
	s.registerTransferRoutes()
	s.registerPreviewRoutes()
	s.registerCatalogRoutes()

	if sseManager != nil {
		s.router.Get(eventsPath, sse.NewHandler(sseManager, requestUserID, logger).ServeHTTP)
	}
	if opts.Registry != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, used by tests and the OpenAPI dump.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	if opts.Registry != nil {
		s.router.Use(NewMetrics(opts.Registry).instrument(s.logger))
	}
	if len(opts.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	if s.services != nil && s.services.Auth != nil {
		s.router.Use(authMiddleware(s.services.Auth))
	}
}

// bearer is the security requirement shared by every authenticated operation.
var bearer = []map[string][]string{{"bearer": {}}}
