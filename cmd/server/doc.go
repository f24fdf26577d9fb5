// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

/*
Package main is the entry point for the Maplegend server.

Maplegend turns a spreadsheet of organization addresses with coordinates
into self-contained interactive HTML maps. Each organization among the top N
by point count gets its own colored, toggleable layer; everything else is
grouped into an "Other" layer. Maps can be drawn for the whole table or per
sub-region, with an optional layer of reference cities.

# Process layout

	RootSupervisor ("maplegend")
	├── DataSupervisor ("data-layer")
	│   └── CityRefreshService (if CITIES_REFRESH_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Startup order:

 1. Configuration: koanf v2 from defaults, config.yaml and the environment
 2. Logging: zerolog, with an slog bridge for the supervisor
 3. City source: local file or HTTP URL behind a circuit breaker
 4. Generator and API handler
 5. Supervisor tree and HTTP server

SIGINT or SIGTERM marks the handler as draining (readiness returns 503),
then the HTTP server is shut down within HTTP_SHUTDOWN_TIMEOUT.

# Configuration

See internal/config for every key. Common ones:

	HTTP_PORT=8080
	LOG_LEVEL=info
	LOG_FORMAT=json
	CITIES_SOURCE=/data/cities_db.csv
	UPLOAD_MAX_BYTES=20971520
	RATE_LIMIT_REQUESTS=60

For one-off rendering without a server use cmd/render.
*/
package main
