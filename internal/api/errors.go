// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/maplegend/internal/cities"
	"github.com/tomtom215/maplegend/internal/generator"
	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/mapview"
	"github.com/tomtom215/maplegend/internal/points"
)

var (
	// ErrDocumentNotFound is returned for unknown or expired document IDs.
	ErrDocumentNotFound = errors.New("map document not found or expired")

	// ErrMissingFile is returned when an upload has no "file" part.
	ErrMissingFile = errors.New("a spreadsheet must be uploaded in the \"file\" field")
)

// errorClass is the HTTP rendering of a domain error.
type errorClass struct {
	status int
	code   string
}

// classify maps sentinel errors to a status and error code. The order matters
// only where one error wraps several sentinels.
func classify(err error) errorClass {
	var (
		maxErr   *http.MaxBytesError
		fieldErr *FieldError
	)
	switch {
	case errors.As(err, &maxErr):
		return errorClass{http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge}
	case errors.Is(err, ErrDocumentNotFound):
		return errorClass{http.StatusNotFound, ErrCodeNotFound}
	case errors.As(err, &fieldErr),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, points.ErrUnsupportedFormat),
		errors.Is(err, points.ErrMissingCoordinates),
		errors.Is(err, points.ErrEmptyWorkbook),
		errors.Is(err, generator.ErrUnknownRegion),
		errors.Is(err, mapview.ErrUnknownStyle):
		return errorClass{http.StatusBadRequest, ErrCodeValidationFailed}
	case errors.Is(err, mapview.ErrNoData):
		return errorClass{http.StatusUnprocessableEntity, ErrCodeNoData}
	case errors.Is(err, cities.ErrSourceUnavailable),
		errors.Is(err, generator.ErrCitiesUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return errorClass{http.StatusServiceUnavailable, ErrCodeServiceUnavailable}
	default:
		return errorClass{http.StatusInternalServerError, ErrCodeInternalError}
	}
}

// respondError writes err using its classified status. Internal errors are
// logged and their text is not exposed.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	class := classify(err)
	logger := logging.Ctx(r.Context())

	message := err.Error()
	if class.status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("code", class.code).Msg("Request failed")
		if class.status == http.StatusInternalServerError {
			message = "An internal error occurred"
		}
	} else {
		logger.Debug().Err(err).Str("code", class.code).Msg("Request rejected")
	}

	var details interface{}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		details = map[string]interface{}{"field": fieldErr.Field, "value": fieldErr.Value}
	}
	NewResponseWriter(w, r).ErrorWithDetails(class.status, class.code, message, details)
}
