// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

/*
Package middleware provides HTTP middleware components for the map server.

Every component has the chi signature func(http.Handler) http.Handler so it can
be passed straight to r.Use.

Key Components:

  - RequestID: request tracking that feeds the logging context
  - PrometheusMetrics: request count, duration and in-flight instrumentation
  - Compression: gzip for clients that accept it
  - MaxBytes: upload size limit
  - PerformanceMonitor: rolling latency window with percentiles

Middleware Stack:

The router applies them in this order:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)
	r.Use(perfMon.Middleware)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

Rendered documents compress well, so the gzip layer sits under every route
except /metrics, which promhttp compresses itself.

Thread Safety:

All components are safe for concurrent use. The performance monitor guards its
window with a sync.RWMutex.
*/
package middleware
