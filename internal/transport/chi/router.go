package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/metrics"
)

// RouterConfig holds what NewRouter mounts besides the REST server.
type RouterConfig struct {
	APIKeys []string
	// GraphQL serves /graphql; nil leaves the route unmounted.
	GraphQL http.Handler
	Logger  *zap.Logger
}

// NewRouter builds the HTTP handler tree.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(JSONRecoverer(l))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(l))
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Get("/suggest", s.Suggest)
		r.Get("/documents/{id}", s.GetDocument)
		r.Get("/documents/{id}/recommendations", s.Recommendations)
	})

	if cfg.GraphQL != nil {
		r.Handle("/graphql", cfg.GraphQL)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
	return r
}
