// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

/*
Package config provides layered configuration for Maplegend.

Sources are applied in order, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/maplegend/config.yaml
 3. Environment variables from an explicit mapping table

Example config.yaml:

	server:
	  port: 8080
	render:
	  style: railway
	  point_radius: 120
	  palette: ["#980387", "#ff9000", ...]
	cities:
	  source: /data/cities_db.csv
	  encoding: windows-1251

Common environment variables:

	HTTP_PORT          listen port (default 8080)
	LOG_LEVEL          trace, debug, info, warn, error
	CITIES_SOURCE      path or URL of the city reference table
	RENDER_PALETTE     comma-separated list of 12 hex colors
	UPLOAD_MAX_BYTES   spreadsheet upload limit

Validate runs after loading; render defaults go through the same validator as
API requests.
*/
package config
