// Package metrics provides the centralized Prometheus metrics registry for
// the portal.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pool_portal",
		Name:      "prediction_requests_total",
		Help:      "Total number of probability distribution requests",
	})
	ProjectionRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pool_portal",
		Name:      "projection_requests_total",
		Help:      "Total number of expected-value projection requests",
	})
	AdminWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pool_portal",
		Name:      "admin_writes_total",
		Help:      "Total number of admin store mutations",
	}, []string{"target"})
	FeedImportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pool_portal",
		Name:      "feed_imports_total",
		Help:      "Total number of results feed import runs",
	})
	LiveBroadcastsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pool_portal",
		Name:      "live_broadcasts_total",
		Help:      "Total number of websocket prediction broadcasts",
	})
)

// Gauge metrics
var (
	RecordedDraws = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pool_portal",
		Name:      "recorded_draws",
		Help:      "Number of outcome records currently in the store",
	})
	CategoryProbability = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pool_portal",
		Name:      "category_probability",
		Help:      "Current empirical probability per category",
	}, []string{"category"})
	ConnectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pool_portal",
		Name:      "connected_clients",
		Help:      "Number of websocket clients currently connected",
	})
)

// Histogram metrics
var (
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pool_portal",
		Name:      "request_duration_seconds",
		Help:      "Duration of dashboard API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionRequestsTotal)
		registry.MustRegister(ProjectionRequestsTotal)
		registry.MustRegister(AdminWritesTotal)
		registry.MustRegister(FeedImportsTotal)
		registry.MustRegister(LiveBroadcastsTotal)

		registry.MustRegister(RecordedDraws)
		registry.MustRegister(CategoryProbability)
		registry.MustRegister(ConnectedClients)

		registry.MustRegister(RequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPredictionRequest records a distribution request.
func RecordPredictionRequest() {
	PredictionRequestsTotal.Inc()
}

// RecordProjectionRequest records an expected-value projection request.
func RecordProjectionRequest() {
	ProjectionRequestsTotal.Inc()
}

// RecordAdminWrite records an admin mutation of the given store.
func RecordAdminWrite(target string) {
	AdminWritesTotal.WithLabelValues(target).Inc()
}

// RecordFeedImport records a results feed import run.
func RecordFeedImport() {
	FeedImportsTotal.Inc()
}

// RecordLiveBroadcast records a websocket prediction broadcast.
func RecordLiveBroadcast() {
	LiveBroadcastsTotal.Inc()
}

// UpdateRecordedDraws updates the stored record count gauge.
func UpdateRecordedDraws(count float64) {
	RecordedDraws.Set(count)
}

// UpdateCategoryProbability updates the per-category probability gauge.
func UpdateCategoryProbability(category string, probability float64) {
	CategoryProbability.WithLabelValues(category).Set(probability)
}
