// Package metrics provides Prometheus metrics for the prode scoring engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the prode service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Computation metrics - one label per engine operation kind
	// (ranking, replay, streaks, classifiers...).
	computationsTotal   *prometheus.CounterVec
	computationDuration *prometheus.HistogramVec
	computationErrors   *prometheus.CounterVec

	// Data quality - flagged records by warning kind.
	warningsTotal *prometheus.CounterVec

	// Replay metrics.
	replaySteps         prometheus.Histogram
	replayStreamsActive prometheus.Gauge

	// Snapshot scale gauges.
	snapshotUsers     prometheus.Gauge
	snapshotMatches   prometheus.Gauge
	snapshotRevisions prometheus.Gauge

	// HTTP performance metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "prode",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.computationsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "computations_total",
			Help:      "Total number of engine computations by kind",
		},
		[]string{"kind"},
	)

	m.computationDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "computation_duration_milliseconds",
			Help:      "Engine computation duration in milliseconds by kind",
			Buckets:   m.histogramBuckets,
		},
		[]string{"kind"},
	)

	m.computationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "computation_errors_total",
			Help:      "Total number of failed engine computations by kind",
		},
		[]string{"kind"},
	)

	m.warningsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "warnings_total",
			Help:      "Total number of flagged records by warning kind (data quality)",
		},
		[]string{"kind"},
	)

	m.replaySteps = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replay_steps",
		Help:      "Number of finished matches folded per replay simulation",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	m.replayStreamsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replay_streams_active",
		Help:      "Currently open replay websocket streams",
	})

	m.snapshotUsers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_users",
		Help:      "Users in the current data snapshot",
	})

	m.snapshotMatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_matches",
		Help:      "Matches in the current data snapshot",
	})

	m.snapshotRevisions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_revisions",
		Help:      "Prediction revisions in the current data snapshot",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP errors by endpoint and type",
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordComputation increments the computation counter for a kind.
func RecordComputation(kind string) {
	globalManager.computationsTotal.WithLabelValues(kind).Inc()
}

// RecordComputationDuration records a computation duration in milliseconds.
func RecordComputationDuration(kind string, durationMs float64) {
	globalManager.computationDuration.WithLabelValues(kind).Observe(durationMs)
}

// RecordComputationError increments the error counter for a kind.
func RecordComputationError(kind string) {
	globalManager.computationErrors.WithLabelValues(kind).Inc()
}

// RecordWarning increments the flagged-record counter for a warning kind.
func RecordWarning(kind string) {
	globalManager.warningsTotal.WithLabelValues(kind).Inc()
}

// RecordReplaySteps records the length of one replay simulation.
func RecordReplaySteps(steps int) {
	globalManager.replaySteps.Observe(float64(steps))
}

// ReplayStreamOpened increments the active stream gauge.
func ReplayStreamOpened() {
	globalManager.replayStreamsActive.Inc()
}

// ReplayStreamClosed decrements the active stream gauge.
func ReplayStreamClosed() {
	globalManager.replayStreamsActive.Dec()
}

// UpdateSnapshotScale sets the snapshot size gauges.
func UpdateSnapshotScale(users, matches, revisions int) {
	globalManager.snapshotUsers.Set(float64(users))
	globalManager.snapshotMatches.Set(float64(matches))
	globalManager.snapshotRevisions.Set(float64(revisions))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an HTTP error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
