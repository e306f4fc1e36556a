// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crate-blink/internal/domain"
)

// Request outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	PhaseDuration     *prometheus.HistogramVec
	QuoteOutcomes     *prometheus.CounterVec
	UnsupportedAssets prometheus.Counter
	BundleSize        prometheus.Histogram

	// Health metrics
	LastSuccessfulRequest prometheus.Gauge
}

// NewMetrics creates a Metrics instance on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "crate_blink"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of action requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Action request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"operation"}),

		PhaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "phase_duration_seconds",
			Help:      "Duration of each purchase pipeline phase in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),
		QuoteOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "asset_outcomes_total",
			Help:      "Per-asset outcomes after quoting and building",
		}, []string{"result"}),
		UnsupportedAssets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "unsupported_assets_total",
			Help:      "Total number of assets reported as unsupported",
		}),
		BundleSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "bundle_transactions",
			Help:      "Number of transactions per returned bundle",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),

		LastSuccessfulRequest: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_request_timestamp",
			Help:      "Unix timestamp of last successful purchase request",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest records one finished API request.
func (m *Metrics) RecordRequest(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(d.Seconds())
	if outcome == OutcomeSuccess {
		m.LastSuccessfulRequest.SetToCurrentTime()
	}
}

// ObservePhase records how long a pipeline phase took.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordOutcomes counts final per-asset outcomes.
func (m *Metrics) RecordOutcomes(outcomes []domain.QuoteOutcome) {
	if m == nil {
		return
	}
	ok := domain.CountSucceeded(outcomes)
	failed := len(outcomes) - ok
	m.QuoteOutcomes.WithLabelValues("success").Add(float64(ok))
	m.QuoteOutcomes.WithLabelValues("failure").Add(float64(failed))
	m.UnsupportedAssets.Add(float64(failed))
}

// RecordBundle records the size of a returned bundle.
func (m *Metrics) RecordBundle(size int) {
	if m == nil {
		return
	}
	m.BundleSize.Observe(float64(size))
}
