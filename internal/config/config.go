// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package config

import (
	"slices"
	"time"

	"github.com/tomtom215/maplegend/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Render    RenderConfig    `koanf:"render"`
	Cities    CitiesConfig    `koanf:"cities"`
	Upload    UploadConfig    `koanf:"upload"`
	Documents DocumentsConfig `koanf:"documents"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RenderConfig holds the server-side defaults for render requests. Each
// request starts from Options() and overrides what the form supplies.
type RenderConfig struct {
	Style                 string   `koanf:"style"`
	PointRadius           float64  `koanf:"point_radius"`
	Zoom                  int      `koanf:"zoom"`
	Palette               []string `koanf:"palette"`
	TopN                  int      `koanf:"top_n"`
	OtherLabel            string   `koanf:"other_label"`
	ShowCities            bool     `koanf:"show_cities"`
	ShowMinimap           bool     `koanf:"show_minimap"`
	LayerControlCollapsed bool     `koanf:"layer_control_collapsed"`
	Attribution           string   `koanf:"attribution"`
	NormalizeNames        bool     `koanf:"normalize_names"`
}

// Options converts the render defaults into a fresh options record.
func (r RenderConfig) Options() models.RenderOptions {
	return models.RenderOptions{
		Regions:               []string{models.AllRegions},
		Style:                 r.Style,
		ShowCities:            r.ShowCities,
		ShowMinimap:           r.ShowMinimap,
		PointRadius:           r.PointRadius,
		Zoom:                  r.Zoom,
		Palette:               slices.Clone(r.Palette),
		TopN:                  r.TopN,
		OtherLabel:            r.OtherLabel,
		LayerControlCollapsed: r.LayerControlCollapsed,
		Attribution:           r.Attribution,
		NormalizeNames:        r.NormalizeNames,
	}
}

// CitiesConfig configures the city reference table.
//
// Source is a local path or an http(s) URL. Encoding is windows-1251 or utf-8.
type CitiesConfig struct {
	Source          string        `koanf:"source"`
	Encoding        string        `koanf:"encoding"`
	Separator       string        `koanf:"separator"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	RefreshInterval time.Duration `koanf:"refresh_interval"` // 0 disables background refresh
	FetchTimeout    time.Duration `koanf:"fetch_timeout"`
	FetchInterval   time.Duration `koanf:"fetch_interval"` // minimum spacing between remote fetches
}

// UploadConfig limits spreadsheet uploads.
type UploadConfig struct {
	MaxBytes int64 `koanf:"max_bytes"`
}

// DocumentsConfig controls how long rendered maps stay downloadable.
type DocumentsConfig struct {
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// Load loads configuration from defaults, an optional YAML file and the
// environment. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
