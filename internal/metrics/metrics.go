// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

/*
Package metrics exposes Prometheus instrumentation for Maplegend.

Metrics are registered on the default registry through promauto and served at
/metrics by the API router:

	curl http://localhost:8080/metrics

Groups:
  - api_*: request count, latency, in-flight requests, rate limit rejections
  - render_*: render duration, documents produced, points and layers drawn
  - ingest_*: spreadsheet rows kept and dropped
  - city_source_*: reference table fetches and loaded city count
  - circuit_breaker_*: breaker state for outbound fetches
  - cache_*: hits and misses per cache
*/
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Render Metrics
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "render_duration_seconds",
			Help:    "Duration of a single map render in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"style"},
	)

	RenderDocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "render_documents_total",
			Help: "Total number of map documents rendered",
		},
		[]string{"result"}, // "success", "no_data", "error"
	)

	RenderPointsDrawn = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "render_points_drawn_total",
			Help: "Total number of point markers drawn",
		},
	)

	RenderLayers = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "render_layers",
			Help:    "Number of organization layers per rendered map",
			Buckets: []float64{1, 2, 4, 6, 8, 10, 12, 13},
		},
	)

	// Ingest Metrics
	IngestPointsKept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_points_kept_total",
			Help: "Total number of spreadsheet rows kept with valid coordinates",
		},
	)

	IngestPointsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_points_dropped_total",
			Help: "Total number of spreadsheet rows dropped for missing coordinates",
		},
	)

	// City Source Metrics
	CitySourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "city_source_fetches_total",
			Help: "Total number of city reference table loads",
		},
		[]string{"kind", "result"}, // kind: "file", "http"
	)

	CitySourceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "city_source_fetch_duration_seconds",
			Help:    "Duration of city reference table loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CitySourceCities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "city_source_cities",
			Help: "Number of cities in the last loaded reference table",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	StoredDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_documents",
			Help: "Number of rendered documents held for download",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRender records one rendered document.
func RecordRender(style string, duration time.Duration, points, layers int) {
	RenderDuration.WithLabelValues(style).Observe(duration.Seconds())
	RenderDocumentsTotal.WithLabelValues("success").Inc()
	RenderPointsDrawn.Add(float64(points))
	RenderLayers.Observe(float64(layers))
}

// RecordRenderFailure records a render that produced no document.
func RecordRenderFailure(noData bool) {
	if noData {
		RenderDocumentsTotal.WithLabelValues("no_data").Inc()
		return
	}
	RenderDocumentsTotal.WithLabelValues("error").Inc()
}

// RecordIngest records the outcome of one spreadsheet ingest.
func RecordIngest(kept, dropped int) {
	IngestPointsKept.Add(float64(kept))
	IngestPointsDropped.Add(float64(dropped))
}

// RecordCitySourceFetch records a city reference table load.
func RecordCitySourceFetch(kind string, duration time.Duration, cities int, err error) {
	CitySourceDuration.Observe(duration.Seconds())
	if err != nil {
		CitySourceFetches.WithLabelValues(kind, "failure").Inc()
		return
	}
	CitySourceFetches.WithLabelValues(kind, "success").Inc()
	CitySourceCities.Set(float64(cities))
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}
