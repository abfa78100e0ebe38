// Package metrics provides Prometheus metrics for the ArbiNote rating service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the ArbiNote service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - vote ingestion outcomes
	votesAccepted  prometheus.Counter
	votesDuplicate prometheus.Counter
	votesRejected  *prometheus.CounterVec
	voteGlobalNote prometheus.Histogram

	// Aggregation Metrics - read-side query performance
	rankingQueryLatency    prometheus.Histogram
	topMatchesQueryLatency prometheus.Histogram
	bestOfQueryLatency     prometheus.Histogram

	// Store Metrics
	storeInsertLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram

	// Operational Health Metrics
	totalVotes     prometheus.Gauge
	totalMatches   prometheus.Gauge
	totalOfficials prometheus.Gauge
	guardSize      prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     prometheus.Counter

	// Enhanced Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "arbinote",
		subsystem:        "votes",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // metric declarations are long by nature
	auto := promauto.With(m.registry)

	m.votesAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "accepted_total",
		Help:      "Total number of votes accepted and stored",
	})

	m.votesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_total",
		Help:      "Total number of duplicate vote submissions rejected",
	})

	m.votesRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rejected_total",
			Help:      "Total number of rejected vote submissions by reason",
		},
		[]string{"reason"},
	)

	m.voteGlobalNote = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "global_note",
		Help:      "Distribution of accepted votes' global notes",
		Buckets:   []float64{1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
	})

	m.rankingQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "query_latency_milliseconds",
		Help:      "Histogram of ranking recomputation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.topMatchesQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "top_matches_latency_milliseconds",
		Help:      "Histogram of top-matches query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.bestOfQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "best_of_latency_milliseconds",
		Help:      "Histogram of best-of-matchday query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeInsertLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "insert_latency_milliseconds",
		Help:      "Histogram of vote insert latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "query_latency_milliseconds",
		Help:      "Histogram of store read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.totalVotes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stored_total",
		Help:      "Total number of votes currently stored",
	})

	m.totalMatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "reference",
		Name:      "matches_total",
		Help:      "Total number of matches known to the service",
	})

	m.totalOfficials = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "reference",
		Name:      "officials_total",
		Help:      "Total number of officials known to the service",
	})

	m.guardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "guard_size",
		Help:      "Current number of vote keys tracked by the fast-path guard",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter",
	})

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "errors",
			Name:      "by_component_total",
			Help:      "Total errors by component and error type",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "errors",
			Name:      "by_type_total",
			Help:      "Total errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "errors",
			Name:      "by_endpoint_total",
			Help:      "Total errors by endpoint, method and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Histogram of garbage collection pause times in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level wrappers over the global manager.

// RecordVoteAccepted increments the accepted vote counter.
func RecordVoteAccepted() {
	globalManager.votesAccepted.Inc()
}

// RecordVoteDuplicate increments the duplicate vote counter.
func RecordVoteDuplicate() {
	globalManager.votesDuplicate.Inc()
}

// RecordVoteRejected increments the rejected vote counter for a reason.
func RecordVoteRejected(reason string) {
	globalManager.votesRejected.WithLabelValues(reason).Inc()
}

// RecordVoteGlobalNote observes an accepted vote's global note.
func RecordVoteGlobalNote(note float64) {
	globalManager.voteGlobalNote.Observe(note)
}

// RecordRankingLatency observes a ranking recomputation latency.
func RecordRankingLatency(latencyMs float64) {
	globalManager.rankingQueryLatency.Observe(latencyMs)
}

// RecordTopMatchesLatency observes a top-matches query latency.
func RecordTopMatchesLatency(latencyMs float64) {
	globalManager.topMatchesQueryLatency.Observe(latencyMs)
}

// RecordBestOfLatency observes a best-of-matchday query latency.
func RecordBestOfLatency(latencyMs float64) {
	globalManager.bestOfQueryLatency.Observe(latencyMs)
}

// RecordStoreInsertLatency observes a vote insert latency.
func RecordStoreInsertLatency(latencyMs float64) {
	globalManager.storeInsertLatency.Observe(latencyMs)
}

// RecordStoreQueryLatency observes a store read latency.
func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

// UpdateTotalVotes sets the stored vote gauge.
func UpdateTotalVotes(count int) {
	globalManager.totalVotes.Set(float64(count))
}

// UpdateTotalMatches sets the known match gauge.
func UpdateTotalMatches(count int) {
	globalManager.totalMatches.Set(float64(count))
}

// UpdateTotalOfficials sets the known official gauge.
func UpdateTotalOfficials(count int) {
	globalManager.totalOfficials.Set(float64(count))
}

// UpdateGuardSize sets the fast-path guard size gauge.
func UpdateGuardSize(size int64) {
	globalManager.guardSize.Set(float64(size))
}

// RecordHTTPRequest records an HTTP request by endpoint, method and status.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited increments the rate-limited request counter.
func RecordRateLimited() {
	globalManager.httpRateLimited.Inc()
}

// RecordErrorByComponent records an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by endpoint, method and type.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes a GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
