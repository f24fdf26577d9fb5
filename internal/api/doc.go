// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

/*
Package api provides the HTTP layer of the map server.

Users upload a spreadsheet of organization points, pick regions and render
options, and receive one standalone HTML map per selection. Rendered documents
are held in a TTL store and served for download or inline preview.

Endpoints:

	GET  /                            upload page
	GET  /api/v1/health/live          liveness probe
	GET  /api/v1/health/ready         readiness probe with city source status
	GET  /api/v1/health/performance   rolling latency percentiles
	GET  /api/v1/options              styles, default palette, slider bounds
	POST /api/v1/regions              subregions present in an uploaded workbook
	POST /api/v1/maps                 render maps from an uploaded workbook
	GET  /api/v1/maps/{id}            download a rendered map
	GET  /api/v1/maps/{id}/preview    view a rendered map inline
	GET  /metrics                     Prometheus metrics

Response Format:

JSON endpoints wrap their payload in APIResponse:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NO_DATA", "message": "..."}, "meta": {...}}

Error codes are listed next to ErrCodeBadRequest. Sentinel errors from the
ingest, city and render packages are mapped to codes in errors.go.

Middleware:

Routing uses chi with go-chi/cors for CORS and go-chi/httprate for per-IP rate
limiting. Request IDs, Prometheus instrumentation, gzip and upload limits come
from internal/middleware.
*/
package api
