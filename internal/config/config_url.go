// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// IsRemoteSource reports whether source names an http(s) URL rather than a file.
func IsRemoteSource(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// validateSourceURL validates a URL pointing at a downloadable file.
// Unlike a service base URL it must carry a path.
func validateSourceURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.Path == "" || parsedURL.Path == "/" {
		return fmt.Errorf("%s must point at a file, got no path", fieldName)
	}

	return nil
}
