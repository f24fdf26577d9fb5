// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package config

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/maplegend/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateRender(); err != nil {
		return err
	}

	if err := c.validateCities(); err != nil {
		return err
	}

	return c.validateStorage()
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateSecurity validates rate limiting bounds.
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateRender runs the request validator over the render defaults so a bad
// config file fails at startup instead of on the first upload.
func (c *Config) validateRender() error {
	if verr := validation.ValidateStruct(c.Render.Options()); verr != nil {
		return fmt.Errorf("render defaults are invalid: %w", verr)
	}
	return nil
}

// validEncodings lists the supported city table encodings.
var validEncodings = map[string]bool{
	"windows-1251": true,
	"cp1251":       true,
	"utf-8":        true,
}

func (c *Config) validateCities() error {
	if c.Cities.Source == "" {
		return fmt.Errorf("CITIES_SOURCE is required")
	}
	if IsRemoteSource(c.Cities.Source) {
		if err := validateSourceURL(c.Cities.Source, "CITIES_SOURCE"); err != nil {
			return err
		}
	}
	if !validEncodings[strings.ToLower(c.Cities.Encoding)] {
		return fmt.Errorf("CITIES_ENCODING must be one of: windows-1251, utf-8")
	}
	if utf8.RuneCountInString(c.Cities.Separator) != 1 {
		return fmt.Errorf("CITIES_SEPARATOR must be a single character, got %q", c.Cities.Separator)
	}
	if c.Cities.CacheTTL <= 0 {
		return fmt.Errorf("CITIES_CACHE_TTL must be positive")
	}
	if c.Cities.RefreshInterval < 0 {
		return fmt.Errorf("CITIES_REFRESH_INTERVAL must not be negative")
	}
	if c.Cities.FetchTimeout <= 0 {
		return fmt.Errorf("CITIES_FETCH_TIMEOUT must be positive")
	}
	if c.Cities.FetchInterval < 0 {
		return fmt.Errorf("CITIES_FETCH_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Documents.TTL <= 0 {
		return fmt.Errorf("DOCUMENTS_TTL must be positive")
	}
	if c.Documents.MaxEntries < 0 {
		return fmt.Errorf("DOCUMENTS_MAX_COUNT must not be negative")
	}
	return nil
}
