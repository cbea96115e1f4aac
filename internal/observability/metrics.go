// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"revops-engine/internal/domain"
)

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "revops"

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Calculation metrics
	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
	ValidationFailures  *prometheus.CounterVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	CacheSize   prometheus.Gauge

	// Scenario metrics
	ScenariosStored prometheus.Gauge

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a Metrics instance with all metrics registered on a
// private registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		CalculationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "calculations_total",
			Help:      "Total number of calculations by operation",
		}, []string{"operation"}),
		CalculationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "calculation_duration_seconds",
			Help:      "Calculation duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"operation"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "validation_failures_total",
			Help:      "Total number of rejected inputs by failure kind",
		}, []string{"kind"}),

		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of derived-result cache hits",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of derived-result cache misses",
		}),
		CacheSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Current number of cached results",
		}),

		ScenariosStored: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scenarios",
			Name:      "stored",
			Help:      "Current number of saved scenarios",
		}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"route", "status"}),

		registry: reg,
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCalculation records one calculation of operation.
func (m *Metrics) RecordCalculation(operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CalculationsTotal.WithLabelValues(operation).Inc()
	m.CalculationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordValidationFailure counts a rejected input by its sentinel kind.
func (m *Metrics) RecordValidationFailure(err error) {
	if m == nil || err == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(FailureKind(err)).Inc()
}

// RecordCacheHit increments the cache hit counter.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter and updates the size gauge.
func (m *Metrics) RecordCacheMiss(entries int) {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
	m.CacheSize.Set(float64(entries))
}

// SetScenariosStored updates the saved scenarios gauge.
func (m *Metrics) SetScenariosStored(n int) {
	if m == nil {
		return
	}
	m.ScenariosStored.Set(float64(n))
}

// RecordHTTPRequest counts one served request.
func (m *Metrics) RecordHTTPRequest(route, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, status).Inc()
}

// FailureKind maps a validation error to a low-cardinality label.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrRateOutOfRange):
		return "rate_out_of_range"
	case errors.Is(err, domain.ErrPercentOutOfRange):
		return "percent_out_of_range"
	case errors.Is(err, domain.ErrNegativeAmount):
		return "negative_amount"
	case errors.Is(err, domain.ErrNonPositive):
		return "non_positive"
	case errors.Is(err, domain.ErrMissingPrice):
		return "missing_price"
	case errors.Is(err, domain.ErrUnknownCostMethod):
		return "unknown_cost_method"
	case errors.Is(err, domain.ErrUnknownCommissionPolicy):
		return "unknown_commission_policy"
	case errors.Is(err, domain.ErrDuplicateChannel):
		return "duplicate_channel"
	case errors.Is(err, domain.ErrUnknownStage):
		return "unknown_stage"
	default:
		return "other"
	}
}
