// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package models

import "time"

// AllRegions selects a single combined map over every subregion.
const AllRegions = "All regions on one map"

// Palette and slider bounds.
const (
	PaletteSize = 12

	MinPointRadius     = 50
	MaxPointRadius     = 200
	DefaultPointRadius = 90

	MinZoom     = 1
	MaxZoom     = 15
	DefaultZoom = 7

	DefaultTopN       = 12
	DefaultOtherLabel = "Other"
	DefaultStyle      = "standard"
)

// DefaultPalette returns the built-in 12-color palette in rank order.
func DefaultPalette() []string {
	return []string{
		"#980387", "#ff9000", "#f70068", "#2970e2",
		"#7f9c21", "#441066", "#f15821", "#64E600",
		"#f12121", "#00d7e6", "#E600D7", "#9383C9",
	}
}

// RenderOptions is the configuration record for one render request.
// It is built once per request and never mutated by the pipeline.
type RenderOptions struct {
	Regions               []string `json:"regions"`
	Style                 string   `json:"style" validate:"required,oneof=standard railway railway2"`
	ShowCities            bool     `json:"show_cities"`
	ShowMinimap           bool     `json:"show_minimap"`
	PointRadius           float64  `json:"point_radius" validate:"gte=50,lte=200"`
	Zoom                  int      `json:"zoom" validate:"gte=1,lte=15"`
	Palette               []string `json:"palette" validate:"len=12,dive,hexcolor"`
	TopN                  int      `json:"top_n" validate:"gte=1,lte=12"`
	OtherLabel            string   `json:"other_label" validate:"required,max=64"`
	LayerControlCollapsed bool     `json:"layer_control_collapsed"`
	Attribution           string   `json:"attribution" validate:"max=256"`
	NormalizeNames        bool     `json:"normalize_names"`
}

// DefaultRenderOptions returns options matching the built-in defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Regions:     []string{AllRegions},
		Style:       DefaultStyle,
		PointRadius: DefaultPointRadius,
		Zoom:        DefaultZoom,
		Palette:     DefaultPalette(),
		TopN:        DefaultTopN,
		OtherLabel:  DefaultOtherLabel,
	}
}

// Document is one exported HTML map.
type Document struct {
	ID        string    `json:"id"`
	Region    string    `json:"region"`
	FileName  string    `json:"file_name"`
	HTML      []byte    `json:"-"`
	Points    int       `json:"points"`
	Layers    int       `json:"layers"`
	Cities    int       `json:"cities"`
	CreatedAt time.Time `json:"created_at"`
}

// Size returns the rendered document size in bytes.
func (d *Document) Size() int {
	return len(d.HTML)
}
