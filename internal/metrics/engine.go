package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/seekr/internal/db"
)

// Engine and interaction Prometheus metrics.
var (
	EngineOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "seekr",
			Name:      "engine_operation_duration_seconds",
			Help:      "Search engine call duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"driver", "op", "status"},
	)

	InteractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seekr",
			Name:      "interactions_total",
			Help:      "Recorded user interactions",
		},
		[]string{"kind"},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers engine and interaction metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineOperationDuration)
	prometheus.MustRegister(InteractionsTotal)
	engineMetricsRegistered = true
}

// EngineObserver records engine calls into EngineOperationDuration.
type EngineObserver struct{}

// ObserveOp implements db.Observer.
func (EngineObserver) ObserveOp(driver, op string, elapsed time.Duration, err error) {
	EngineOperationDuration.WithLabelValues(driver, op, db.Status(err)).Observe(elapsed.Seconds())
}

// InteractionCounter counts recorded interactions by kind.
type InteractionCounter struct{}

// Inc increments the counter for kind.
func (InteractionCounter) Inc(kind string) {
	InteractionsTotal.WithLabelValues(kind).Inc()
}
