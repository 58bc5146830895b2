package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/domain"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	"github.com/kailas-cloud/seekr/internal/logger"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

// DocumentReader loads single documents.
type DocumentReader interface {
	Get(ctx context.Context, id string) (domdoc.Document, error)
}

// Searcher serves read queries.
type Searcher interface {
	Search(ctx context.Context, opts ...request.Option) (result.Result, error)
	Suggest(ctx context.Context, prefix string) ([]string, error)
	Recommend(ctx context.Context, id string, limit int) ([]domdoc.Document, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements the REST read API.
type Server struct {
	documents     DocumentReader
	search        Searcher
	health        HealthChecker
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(documents DocumentReader, search Searcher, health HealthChecker) *Server {
	return &Server{
		documents: documents,
		search:    search,
		health:    health,
		errorHandlers: []errorHandler{
			validationHandler,
			sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
			sentinelHandler(domain.ErrEngineUnavailable, http.StatusServiceUnavailable, ErrorCodeEngineUnavailable),
			sentinelHandler(domain.ErrEngineRejected, http.StatusBadGateway, ErrorCodeEngineRejected),
		},
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if !report.Up() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthToAPI(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	res, err := s.search.Search(r.Context(), params.options()...)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResultToAPI(&res))
}

// Suggest handles GET /api/v1/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	params, err := bindSuggestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	prefix := ""
	if params.Prefix != nil {
		prefix = *params.Prefix
	}
	out, err := s.search.Suggest(r.Context(), prefix)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: out})
}

// GetDocument handles GET /api/v1/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := bindDocumentID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	doc, err := s.documents.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentToAPI(&doc))
}

// Recommendations handles GET /api/v1/documents/{id}/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := bindDocumentID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	params, err := bindRecommendationsParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	docs, err := s.search.Recommend(r.Context(), id, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Items: DocumentsToAPI(docs)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The sentinel text is the client message so internals never leak.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// validationHandler reports the offending field of a ValidationError.
func validationHandler(w http.ResponseWriter, err error) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, ve.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	l := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			l.Warn("domain error", zap.Error(err))
			return
		}
	}
	l.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
