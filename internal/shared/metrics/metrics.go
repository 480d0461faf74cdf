package metrics

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	recommendationsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total recommendation requests served",
		},
		[]string{"domain", "preset"},
	)
	itemsFiltered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_items_filtered_total",
		Help: "Total catalog items rejected by the hard constraint filter",
	})
	discoveryInjected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_discovery_injected_total",
		Help: "Total discovery items injected into responses",
	})
	explanationFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explanation_fallback_total",
			Help: "Total explanation generator failures that fell through to the next generator",
		},
		[]string{"generator"},
	)
	pipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_pipeline_duration_seconds",
		Help:    "Filter, score and inject duration in seconds",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "path"},
	)
	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_blocked_total",
			Help: "Total requests rejected by the rate limiter",
		},
		[]string{"group"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		recommendationsServed,
		itemsFiltered,
		discoveryInjected,
		explanationFallbacks,
		pipelineDuration,
		httpRequests,
		httpDuration,
		rateLimited,
	)
}

// IncRecommendationsServed counts one served recommendation request.
func IncRecommendationsServed(domain, preset string) {
	recommendationsServed.WithLabelValues(domain, preset).Inc()
}

// AddItemsFiltered records items dropped by the hard filter.
func AddItemsFiltered(n int) {
	if n > 0 {
		itemsFiltered.Add(float64(n))
	}
}

// AddDiscoveryInjected records injected discovery items.
func AddDiscoveryInjected(n int) {
	if n > 0 {
		discoveryInjected.Add(float64(n))
	}
}

// IncExplanationFallback counts a failed explanation generator.
func IncExplanationFallback(generator string) {
	explanationFallbacks.WithLabelValues(generator).Inc()
}

// ObservePipelineDuration records one pipeline run.
func ObservePipelineDuration(d time.Duration) {
	pipelineDuration.Observe(d.Seconds())
}

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// IncRateLimited counts a request rejected by the rate limiter.
func IncRateLimited(group string) {
	rateLimited.WithLabelValues(group).Inc()
}

// RegisterDBStats exports connection pool stats for db under the given
// name. Registering the same name twice is a no-op.
func RegisterDBStats(db *sql.DB, name string) error {
	err := registry.Register(collectors.NewDBStatsCollector(db, name))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

// Registry exposes the registry backing Handler, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
