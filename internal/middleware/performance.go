// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package middleware

import (
	"net/http"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/aclements/go-moremath/stats"

	"github.com/tomtom215/maplegend/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged.
const DefaultSlowRequestThreshold = 2 * time.Second

// RequestMetrics tracks performance metrics for API requests
type RequestMetrics struct {
	Route      string
	Method     string
	Duration   time.Duration
	StatusCode int
	Timestamp  time.Time
}

// PerformanceMonitor keeps a rolling window of request latencies.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	metrics       []RequestMetrics
	maxMetrics    int
	slowThreshold time.Duration
	now           func() time.Time
}

// EndpointStats contains aggregated statistics for an endpoint.
// Durations are in milliseconds.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int     `json:"request_count"`
	ErrorCount   int     `json:"error_count"`
	AvgMs        float64 `json:"avg_ms"`
	P50Ms        float64 `json:"p50_ms"`
	P95Ms        float64 `json:"p95_ms"`
	P99Ms        float64 `json:"p99_ms"`
	MinMs        float64 `json:"min_ms"`
	MaxMs        float64 `json:"max_ms"`
}

// NewPerformanceMonitor creates a monitor holding the last maxMetrics requests.
func NewPerformanceMonitor(maxMetrics int) *PerformanceMonitor {
	if maxMetrics <= 0 {
		maxMetrics = 1000
	}
	return &PerformanceMonitor{
		metrics:       make([]RequestMetrics, 0, maxMetrics),
		maxMetrics:    maxMetrics,
		slowThreshold: DefaultSlowRequestThreshold,
		now:           time.Now,
	}
}

// SetSlowThreshold changes the slow request log threshold. Zero disables it.
func (pm *PerformanceMonitor) SetSlowThreshold(d time.Duration) {
	pm.mu.Lock()
	pm.slowThreshold = d
	pm.mu.Unlock()
}

// RecordRequest adds a request metric
func (pm *PerformanceMonitor) RecordRequest(metric *RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.metrics = append(pm.metrics, *metric)
	if len(pm.metrics) > pm.maxMetrics {
		pm.metrics = pm.metrics[len(pm.metrics)-pm.maxMetrics:]
	}
}

// GetStats returns per-endpoint statistics over the window, busiest first.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	byEndpoint := make(map[string][]RequestMetrics)
	for _, m := range pm.metrics {
		key := m.Method + " " + m.Route
		byEndpoint[key] = append(byEndpoint[key], m)
	}
	pm.mu.RUnlock()

	out := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, ms := range byEndpoint {
		out = append(out, summarize(endpoint, ms))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestCount != out[j].RequestCount {
			return out[i].RequestCount > out[j].RequestCount
		}
		return out[i].Endpoint < out[j].Endpoint
	})
	return out
}

func summarize(endpoint string, ms []RequestMetrics) EndpointStats {
	xs := make([]float64, len(ms))
	errs := 0
	for i, m := range ms {
		xs[i] = float64(m.Duration) / float64(time.Millisecond)
		if m.StatusCode >= http.StatusInternalServerError {
			errs++
		}
	}
	slices.Sort(xs)
	sample := stats.Sample{Xs: xs, Sorted: true}
	lo, hi := sample.Bounds()

	return EndpointStats{
		Endpoint:     endpoint,
		RequestCount: len(ms),
		ErrorCount:   errs,
		AvgMs:        sample.Mean(),
		P50Ms:        sample.Quantile(0.50),
		P95Ms:        sample.Quantile(0.95),
		P99Ms:        sample.Quantile(0.99),
		MinMs:        lo,
		MaxMs:        hi,
	}
}

// GetRecentMetrics returns the most recent N metrics
func (pm *PerformanceMonitor) GetRecentMetrics(n int) []RequestMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if n > len(pm.metrics) {
		n = len(pm.metrics)
	}
	recent := make([]RequestMetrics, n)
	copy(recent, pm.metrics[len(pm.metrics)-n:])
	return recent
}

// Middleware records the latency of every request under its route pattern.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := pm.now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		end := pm.now()
		duration := end.Sub(start)
		route := RoutePattern(r)
		pm.RecordRequest(&RequestMetrics{
			Route:      route,
			Method:     r.Method,
			Duration:   duration,
			StatusCode: wrapper.statusCode,
			Timestamp:  end,
		})

		pm.mu.RLock()
		threshold := pm.slowThreshold
		pm.mu.RUnlock()
		if threshold > 0 && duration > threshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", duration).
				Dur("threshold", threshold).
				Msg("Slow request detected")
		}
	})
}
