package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the search engine is not responding.
	Unhealthy Status = "unhealthy"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckEngine = "engine"
	CheckRedis  = "redis"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Message string
	Checks  map[string]CheckResult
}

// Up reports whether the search engine answered.
func (r Report) Up() bool { return r.Status != Unhealthy }

// Service coordinates health checks.
type Service struct {
	engine     EngineProbe
	engineName string
	redis      Pinger
}

// New creates a Service. engineName is the display name used in messages.
func New(engine EngineProbe, engineName string) *Service {
	return &Service{engine: engine, engineName: engineName}
}

// WithRedis adds the profile store as an optional check.
func (s *Service) WithRedis(p Pinger) *Service {
	s.redis = p
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{CheckEngine: CheckOK}
	r := Report{Status: Healthy, Message: s.engineName + " is healthy", Checks: checks}

	if !s.engine.Health(ctx) {
		checks[CheckEngine] = CheckError
		r.Status = Unhealthy
		r.Message = s.engineName + " is not responding"
	}

	if s.redis != nil {
		checks[CheckRedis] = CheckOK
		if err := s.redis.Ping(ctx); err != nil {
			logger.FromContext(ctx).Warn("redis health check failed", zap.Error(err))
			checks[CheckRedis] = CheckError
			if r.Status == Healthy {
				r.Status = Degraded
			}
		}
	}
	return r
}

// EngineDisplayName maps a driver name to the name shown in health messages.
func EngineDisplayName(driver string) string {
	switch driver {
	case "opensearch":
		return "OpenSearch"
	case "elasticsearch":
		return "Elasticsearch"
	case "bleve":
		return "Bleve"
	default:
		return driver
	}
}
