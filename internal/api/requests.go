// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/maplegend/internal/models"
	"github.com/tomtom215/maplegend/internal/points"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temp file.
const multipartMemory = 8 << 20

// Form field names accepted by the render endpoints.
const (
	fieldFile                  = "file"
	fieldRegions               = "regions"
	fieldStyle                 = "style"
	fieldShowCities            = "show_cities"
	fieldShowMinimap           = "show_minimap"
	fieldPointRadius           = "point_radius"
	fieldZoom                  = "zoom"
	fieldPalette               = "palette"
	fieldTopN                  = "top_n"
	fieldOtherLabel            = "other_label"
	fieldAttribution           = "attribution"
	fieldLayerControlCollapsed = "layer_control_collapsed"
	fieldNormalizeNames        = "normalize_names"
)

// FieldError is a form value that could not be parsed.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// renderOptionsFromForm overlays submitted form values on defaults. Absent
// fields keep their default. Unchecked checkboxes are absent from HTML form
// posts, so a bool field that is present but empty counts as false.
func renderOptionsFromForm(form url.Values, defaults models.RenderOptions) (models.RenderOptions, error) {
	opts := defaults
	opts.Palette = append([]string(nil), defaults.Palette...)
	opts.Regions = append([]string(nil), defaults.Regions...)

	if regions := nonBlank(form[fieldRegions]); len(regions) > 0 {
		opts.Regions = regions
	}
	if palette := splitList(form[fieldPalette]); len(palette) > 0 {
		opts.Palette = palette
	}
	if v, ok := single(form, fieldStyle); ok {
		opts.Style = v
	}
	if v, ok := single(form, fieldOtherLabel); ok {
		opts.OtherLabel = v
	}
	if v, ok := single(form, fieldAttribution); ok {
		opts.Attribution = v
	}

	var err error
	bools := []struct {
		field string
		dst   *bool
	}{
		{fieldShowCities, &opts.ShowCities},
		{fieldShowMinimap, &opts.ShowMinimap},
		{fieldLayerControlCollapsed, &opts.LayerControlCollapsed},
		{fieldNormalizeNames, &opts.NormalizeNames},
	}
	for _, b := range bools {
		if *b.dst, err = formBool(form, b.field, *b.dst); err != nil {
			return opts, err
		}
	}

	if opts.PointRadius, err = formFloat(form, fieldPointRadius, opts.PointRadius); err != nil {
		return opts, err
	}
	if opts.Zoom, err = formInt(form, fieldZoom, opts.Zoom); err != nil {
		return opts, err
	}
	if opts.TopN, err = formInt(form, fieldTopN, opts.TopN); err != nil {
		return opts, err
	}
	return opts, nil
}

// ingestUpload reads the uploaded workbook. ParseMultipartForm must have run.
func ingestUpload(r *http.Request, normalize bool) (*points.Table, string, error) {
	file, header, err := r.FormFile(fieldFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", ErrMissingFile
		}
		return nil, "", err
	}
	defer file.Close()

	if err := points.CheckExtension(header.Filename); err != nil {
		return nil, header.Filename, err
	}
	table, err := points.Read(file, points.Options{NormalizeNames: normalize})
	return table, header.Filename, err
}

func single(form url.Values, field string) (string, bool) {
	vs, ok := form[field]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

func formBool(form url.Values, field string, def bool) (bool, error) {
	v, ok := single(form, field)
	if !ok {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "", "off", "no":
		return false, nil
	case "on", "yes":
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, &FieldError{Field: field, Value: v, Err: err}
	}
	return b, nil
}

func formInt(form url.Values, field string, def int) (int, error) {
	v, ok := single(form, field)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, &FieldError{Field: field, Value: v, Err: err}
	}
	return n, nil
}

func formFloat(form url.Values, field string, def float64) (float64, error) {
	v, ok := single(form, field)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil {
		return def, &FieldError{Field: field, Value: v, Err: err}
	}
	return f, nil
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// splitList accepts repeated values, a single comma-separated value, or both.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, nonBlank(strings.Split(v, ","))...)
	}
	return out
}
