// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/maplegend/internal/cities"
)

// ReadyStatus is the readiness probe payload.
type ReadyStatus struct {
	Status    string         `json:"status"`
	Uptime    float64        `json:"uptime"`
	Documents int            `json:"documents"`
	Cities    *cities.Status `json:"cities,omitempty"`
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
//
// Maps without a city layer never depend on the city source, so an open
// breaker only degrades the status. The probe fails while draining.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := ReadyStatus{
		Status:    "ready",
		Uptime:    time.Since(h.startTime).Seconds(),
		Documents: h.documents.Len(),
	}
	if h.cities != nil {
		st := h.cities.Status()
		status.Cities = &st
		if st.Breaker == "open" {
			status.Status = "degraded"
		}
	}

	if h.draining.Load() {
		status.Status = "draining"
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "server is shutting down", status)
		return
	}
	WriteSuccess(w, r, status)
}

// HealthPerformance returns latency statistics over the recent request window.
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"endpoints": h.perfMon.GetStats(),
	})
}
