package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry and every collector the
// API exposes. A private registry keeps the scrape output free of
// whatever the default registry accumulates.
type MetricsService struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	catalogFetchDuration *prometheus.HistogramVec
	cacheOperations      *prometheus.CounterVec
	cacheWriteDuration   prometheus.Histogram

	searchExpansions   prometheus.Histogram
	searchTruncations  prometheus.Counter
	schedulesGenerated prometheus.Counter
}

// NewMetricsService builds and registers all collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plastron_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plastron_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		catalogFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plastron_catalog_fetch_duration_seconds",
			Help:    "Catalog fetch latency by outcome.",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		cacheOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plastron_catalog_cache_operations_total",
			Help: "Catalog cache lookups by result.",
		}, []string{"result"}),
		cacheWriteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plastron_catalog_cache_write_duration_seconds",
			Help:    "Catalog cache write latency.",
			Buckets: prometheus.DefBuckets,
		}),
		searchExpansions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plastron_search_expanded_nodes",
			Help:    "Search states expanded per request.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		}),
		searchTruncations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plastron_search_truncations_total",
			Help: "Searches cut off by the expansion budget.",
		}),
		schedulesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plastron_schedules_generated_total",
			Help: "Ranked schedules returned to clients.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.catalogFetchDuration,
		m.cacheOperations,
		m.cacheWriteDuration,
		m.searchExpansions,
		m.searchTruncations,
		m.schedulesGenerated,
	)

	return m
}

// ObserveHTTPRequest records one completed request.
func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveCatalogFetch records one upstream catalog call.
func (m *MetricsService) ObserveCatalogFetch(outcome string, duration time.Duration) {
	m.catalogFetchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordCacheOperation records a cache lookup. Implements
// catalog.CacheRecorder.
func (m *MetricsService) RecordCacheOperation(hit bool, _ time.Duration) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOperations.WithLabelValues(result).Inc()
}

// ObserveCacheWrite records a cache store. Implements
// catalog.CacheRecorder.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	m.cacheWriteDuration.Observe(duration.Seconds())
}

// ObserveSearch records the outcome of one schedule search.
func (m *MetricsService) ObserveSearch(expanded int, truncated bool, generated int) {
	m.searchExpansions.Observe(float64(expanded))
	if truncated {
		m.searchTruncations.Inc()
	}
	m.schedulesGenerated.Add(float64(generated))
}

// Handler exposes the registry for the /metrics route.
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
