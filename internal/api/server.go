// Package api exposes the rule-matching engine over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/licomply/licomply/internal/narrative"
	"github.com/licomply/licomply/internal/store"
	"github.com/licomply/licomply/internal/telemetry"
)

// Server wires the rule store, the optional narrative generator, and the
// HTTP handlers together.
type Server struct {
	store            store.Store
	generator        narrative.Generator // nil when narrative generation is disabled
	cache            *narrative.Cache
	adminAPIKey      string
	rateLimitPerIP   int
	narrativeTimeout time.Duration
}

// ServerOption configures optional Server behavior.
type ServerOption func(*Server)

// WithGenerator enables the narrative rendering path.
func WithGenerator(g narrative.Generator) ServerOption {
	return func(s *Server) { s.generator = g }
}

// WithNarrativeTimeout bounds a single narrative-generation call.
func WithNarrativeTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.narrativeTimeout = d
		}
	}
}

// WithRateLimitPerIP sets the per-IP request budget per minute on public
// endpoints. Zero disables rate limiting.
func WithRateLimitPerIP(n int) ServerOption {
	return func(s *Server) { s.rateLimitPerIP = n }
}

// NewServer creates an API server around the given store.
func NewServer(st store.Store, adminKey string, opts ...ServerOption) *Server {
	s := &Server{
		store:            st,
		cache:            narrative.NewCache(),
		adminAPIKey:      adminKey,
		narrativeTimeout: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(telemetry.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	if s.rateLimitPerIP > 0 {
		r.Use(httprate.LimitByIP(s.rateLimitPerIP, time.Minute))
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Business Licensing API"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// matching and report composition; these never suspend except on the
	// narrative call, so the request timeout stays generous enough for it
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.narrativeTimeout + 5*time.Second))
		r.Post("/api/match", s.handleMatch)
		r.Post("/api/report", s.handleReport)
		r.Post("/api/generate-report", s.handleGenerateReport)
	})

	// rule-set surface
	r.Get("/v1/rules/snapshot", s.handleSnapshot)
	r.Get("/v1/rules/stream", s.handleStream)
	r.Post("/v1/rules", s.authAdmin(s.handleUpsertRule))

	return r
}
