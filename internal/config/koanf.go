// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/maplegend/internal/models"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/maplegend/config.yaml",
	"/etc/maplegend/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultCitiesSource is the public city reference table.
const DefaultCitiesSource = "https://raw.githubusercontent.com/Evgeny-Larin/OnlineMaps_Folium/main/db/cities_db.csv"

// Defaults returns the built-in configuration without reading a file or the
// environment. The CLI and tests start from it.
func Defaults() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	render := models.DefaultRenderOptions()
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Render: RenderConfig{
			Style:                 render.Style,
			PointRadius:           render.PointRadius,
			Zoom:                  render.Zoom,
			Palette:               render.Palette,
			TopN:                  render.TopN,
			OtherLabel:            render.OtherLabel,
			ShowCities:            false,
			ShowMinimap:           false,
			LayerControlCollapsed: false,
			Attribution:           "",
			NormalizeNames:        false,
		},
		Cities: CitiesConfig{
			Source:          DefaultCitiesSource,
			Encoding:        "windows-1251",
			Separator:       ";",
			CacheTTL:        24 * time.Hour,
			RefreshInterval: 12 * time.Hour,
			FetchTimeout:    30 * time.Second,
			FetchInterval:   10 * time.Second,
		},
		Upload: UploadConfig{
			MaxBytes: 20 << 20, // 20MB
		},
		Documents: DocumentsConfig{
			TTL:        30 * time.Minute,
			MaxEntries: 256,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"render.palette",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML lists arrive as slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Render defaults
	"render_style":                   "render.style",
	"render_point_radius":            "render.point_radius",
	"render_zoom":                    "render.zoom",
	"render_palette":                 "render.palette",
	"render_top_n":                   "render.top_n",
	"render_other_label":             "render.other_label",
	"render_show_cities":             "render.show_cities",
	"render_show_minimap":            "render.show_minimap",
	"render_layer_control_collapsed": "render.layer_control_collapsed",
	"render_attribution":             "render.attribution",
	"render_normalize_names":         "render.normalize_names",

	// City reference table
	"cities_source":           "cities.source",
	"cities_encoding":         "cities.encoding",
	"cities_separator":        "cities.separator",
	"cities_cache_ttl":        "cities.cache_ttl",
	"cities_refresh_interval": "cities.refresh_interval",
	"cities_fetch_timeout":    "cities.fetch_timeout",
	"cities_fetch_interval":   "cities.fetch_interval",

	// Uploads and rendered documents
	"upload_max_bytes":    "upload.max_bytes",
	"documents_ttl":       "documents.ttl",
	"documents_max_count": "documents.max_entries",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CITIES_SOURCE -> cities.source
//   - RENDER_PALETTE -> render.palette
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	// Unmapped variables are skipped.
	return ""
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
