// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package mapview

import (
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"io"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb/geojson"
)

//go:embed templates/map.html.tmpl
var mapTemplateText string

var mapTemplate = template.Must(template.New("map").Parse(mapTemplateText))

// DefaultTitle is the page title when none is set.
const DefaultTitle = "Map"

// documentConfig is the JSON object the page script reads.
type documentConfig struct {
	Center                [2]float64                 `json:"center"` // [lat, lon]
	Zoom                  int                        `json:"zoom"`
	Base                  TileLayer                  `json:"base"`
	Overlays              []TileLayer                `json:"overlays"`
	Minimap               bool                       `json:"minimap"`
	Attribution           string                     `json:"attribution,omitempty"`
	LayerControlCollapsed bool                       `json:"layerControlCollapsed"`
	Cities                *geojson.FeatureCollection `json:"cities,omitempty"`
	Layers                []layerConfig              `json:"layers"`
}

type layerConfig struct {
	Name        string                     `json:"name"`
	Attribution string                     `json:"attribution"`
	Features    *geojson.FeatureCollection `json:"features"`
}

type pageData struct {
	Title  string
	Config template.JS
}

// Render writes the map as a standalone HTML page.
func (c *Canvas) Render(w io.Writer) error {
	return c.RenderTitled(w, DefaultTitle)
}

// RenderTitled is Render with a page title.
func (c *Canvas) RenderTitled(w io.Writer, title string) error {
	cfg, err := c.configJSON()
	if err != nil {
		return err
	}
	if err := mapTemplate.Execute(w, pageData{Title: title, Config: cfg}); err != nil {
		return fmt.Errorf("execute map template: %w", err)
	}
	return nil
}

func (c *Canvas) configJSON() (template.JS, error) {
	doc := documentConfig{
		Center:                [2]float64{c.center.Lat(), c.center.Lon()},
		Zoom:                  c.opts.Zoom,
		Base:                  c.style.Base,
		Overlays:              c.style.Overlays,
		Minimap:               c.opts.ShowMinimap,
		Attribution:           html.EscapeString(c.attribution),
		LayerControlCollapsed: c.opts.LayerControlCollapsed,
		Cities:                c.cities,
		Layers:                make([]layerConfig, 0, len(c.layers)),
	}
	if doc.Overlays == nil {
		doc.Overlays = []TileLayer{}
	}
	for _, l := range c.layers {
		doc.Layers = append(doc.Layers, layerConfig{
			Name:        l.Name,
			Attribution: html.EscapeString(l.Label),
			Features:    l.Features,
		})
	}

	// go-json escapes <, > and & so the payload cannot close the script element.
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode map config: %w", err)
	}
	return template.JS(b), nil //nolint:gosec // escaped JSON
}
