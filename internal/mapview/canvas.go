// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

// Package mapview builds interactive Leaflet maps from ranked point groups.
//
// A Canvas collects the drawable content of one map (city circles, one layer
// per legend row, a custom attribution) and Render writes it as a single
// self-contained HTML page. Layer content is carried as GeoJSON feature
// collections whose properties hold the circle style.
package mapview

import (
	"errors"
	"fmt"
	"html"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/tomtom215/maplegend/internal/cities"
	"github.com/tomtom215/maplegend/internal/models"
	"github.com/tomtom215/maplegend/internal/ranking"
)

var (
	// ErrNoData is returned when there are no points to center the map on.
	ErrNoData = errors.New("no points to draw")

	// ErrUnknownStyle is returned for a style id outside the fixed set.
	ErrUnknownStyle = errors.New("unknown map style")
)

// Circle styles.
const (
	pointWeight      = 0.5
	pointOutline     = "black"
	pointFillOpacity = 1.0

	cityWeight      = 1.0
	cityColor       = "#3388ff"
	cityFillOpacity = 0.02
)

// Layer is one toggleable legend entry.
type Layer struct {
	Name     string // HTML shown in the layer control
	Label    string
	Color    string
	Features *geojson.FeatureCollection
}

// Canvas is the map under construction.
type Canvas struct {
	opts        models.RenderOptions
	style       Style
	center      orb.Point
	cities      *geojson.FeatureCollection
	layers      []Layer
	attribution string
}

// NewCanvas centers a map on the median latitude and longitude of points.
func NewCanvas(points []models.Point, opts models.RenderOptions) (*Canvas, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	style, ok := StyleByID(opts.Style)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, opts.Style)
	}

	lats := make([]float64, len(points))
	lons := make([]float64, len(points))
	for i, p := range points {
		lats[i], lons[i] = p.Lat, p.Lon
	}

	return &Canvas{
		opts:   opts,
		style:  style,
		center: orb.Point{median(lons), median(lats)},
	}, nil
}

func median(xs []float64) float64 {
	slices.Sort(xs)
	return stats.Sample{Xs: xs, Sorted: true}.Quantile(0.5)
}

// Center returns the map center as [lon, lat].
func (c *Canvas) Center() orb.Point {
	return c.center
}

// Style returns the base style of the map.
func (c *Canvas) Style() Style {
	return c.style
}

// AddCities draws a translucent circle per city sized by population.
func (c *Canvas) AddCities(list []models.City) {
	if len(list) == 0 {
		return
	}
	if c.cities == nil {
		c.cities = geojson.NewFeatureCollection()
	}
	for _, city := range list {
		f := geojson.NewFeature(orb.Point{city.Lon, city.Lat})
		f.Properties = geojson.Properties{
			"radius":      cities.Radius(city.Population),
			"color":       cityColor,
			"fillColor":   cityColor,
			"weight":      cityWeight,
			"fillOpacity": cityFillOpacity,
			"tooltip":     html.EscapeString(city.Name),
		}
		c.cities.Append(f)
	}
}

// CityCount returns the number of city circles drawn.
func (c *Canvas) CityCount() int {
	if c.cities == nil {
		return 0
	}
	return len(c.cities.Features)
}

// AddPointLayers adds one layer per group, in group order. radius is the
// marker radius in meters.
func (c *Canvas) AddPointLayers(groups []ranking.Group, colors ranking.ColorMap, radius float64) {
	for _, g := range groups {
		color := colors.ColorForRow(g.Row)
		fc := geojson.NewFeatureCollection()
		for _, p := range g.Points {
			f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
			f.Properties = geojson.Properties{
				"radius":      radius,
				"color":       pointOutline,
				"fillColor":   color,
				"weight":      pointWeight,
				"fillOpacity": pointFillOpacity,
				"tooltip":     html.EscapeString(p.Name),
				"popup":       html.EscapeString(p.Address),
			}
			fc.Append(f)
		}
		c.layers = append(c.layers, Layer{
			Name:     LayerName(color, g.Row.Label),
			Label:    g.Row.Label,
			Color:    color,
			Features: fc,
		})
	}
}

// LayerName renders the legend entry: a colored dot followed by the label.
func LayerName(color, label string) string {
	return fmt.Sprintf(`<span style="color: %s;"> ⬤ %s</span>`, html.EscapeString(color), html.EscapeString(label))
}

// Layers returns the point layers added so far.
func (c *Canvas) Layers() []Layer {
	return c.layers
}

// PointCount returns the number of point markers drawn.
func (c *Canvas) PointCount() int {
	n := 0
	for _, l := range c.layers {
		n += len(l.Features.Features)
	}
	return n
}

// AddAttribution sets the custom attribution line shown at the bottom right.
func (c *Canvas) AddAttribution(text string) {
	c.attribution = text
}
