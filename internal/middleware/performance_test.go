// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package middleware

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestPerformanceMonitor_WindowIsBounded(t *testing.T) {
	pm := NewPerformanceMonitor(3)
	for i := 1; i <= 5; i++ {
		pm.RecordRequest(&RequestMetrics{Route: "/r", Method: "GET", Duration: time.Duration(i) * time.Millisecond})
	}

	recent := pm.GetRecentMetrics(10)
	if len(recent) != 3 {
		t.Fatalf("window = %d, want 3", len(recent))
	}
	if recent[0].Duration != 3*time.Millisecond || recent[2].Duration != 5*time.Millisecond {
		t.Errorf("window = %v..%v, want 3ms..5ms", recent[0].Duration, recent[2].Duration)
	}
}

func TestPerformanceMonitor_GetStats(t *testing.T) {
	pm := NewPerformanceMonitor(100)
	for i := 1; i <= 9; i++ {
		status := http.StatusOK
		if i == 9 {
			status = http.StatusInternalServerError
		}
		pm.RecordRequest(&RequestMetrics{Route: "/api/v1/maps", Method: "POST", Duration: time.Duration(i*10) * time.Millisecond, StatusCode: status})
	}
	pm.RecordRequest(&RequestMetrics{Route: "/api/v1/options", Method: "GET", Duration: time.Millisecond, StatusCode: http.StatusOK})

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(stats))
	}

	maps := stats[0]
	if maps.Endpoint != "POST /api/v1/maps" || maps.RequestCount != 9 || maps.ErrorCount != 1 {
		t.Errorf("maps stats = %+v", maps)
	}
	if maps.MinMs != 10 || maps.MaxMs != 90 {
		t.Errorf("bounds = %v..%v, want 10..90", maps.MinMs, maps.MaxMs)
	}
	if math.Abs(maps.AvgMs-50) > 1e-9 || math.Abs(maps.P50Ms-50) > 1e-9 {
		t.Errorf("avg/p50 = %v/%v, want 50/50", maps.AvgMs, maps.P50Ms)
	}
	if !(maps.P95Ms > maps.P50Ms && maps.P99Ms >= maps.P95Ms && maps.P99Ms <= maps.MaxMs) {
		t.Errorf("percentiles out of order: %+v", maps)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	pm := NewPerformanceMonitor(10)

	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pm.now = func() time.Time {
		tick = tick.Add(5 * time.Millisecond)
		return tick
	}

	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/api/v1/maps/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/maps/abc", nil))

	recent := pm.GetRecentMetrics(1)
	if len(recent) != 1 {
		t.Fatal("request not recorded")
	}
	got := recent[0]
	if got.Route != "/api/v1/maps/{id}" || got.StatusCode != http.StatusTeapot || got.Duration != 5*time.Millisecond {
		t.Errorf("recorded %+v", got)
	}
}

func TestNewPerformanceMonitor_DefaultCapacity(t *testing.T) {
	if pm := NewPerformanceMonitor(0); pm.maxMetrics != 1000 {
		t.Errorf("maxMetrics = %d, want 1000", pm.maxMetrics)
	}
}
