// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package mapview

// Style identifiers.
const (
	StyleStandard = "standard"
	StyleRailway  = "railway"
	StyleRailway2 = "railway2"
)

// TileLayer is a raster tile source.
type TileLayer struct {
	URL         string  `json:"url"`
	Attribution string  `json:"attribution"`
	Subdomains  string  `json:"subdomains,omitempty"`
	MaxZoom     int     `json:"maxZoom"`
	Opacity     float64 `json:"opacity,omitempty"`
}

// Style is a base map plus optional overlays.
type Style struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Base     TileLayer   `json:"base"`
	Overlays []TileLayer `json:"overlays,omitempty"`
}

var (
	positron = TileLayer{
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
		Subdomains:  "abcd",
		MaxZoom:     20,
	}
	openStreetMap = TileLayer{
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		MaxZoom:     19,
	}
	railwayInfrastructure = TileLayer{
		URL:         "https://{s}.tiles.openrailwaymap.org/standard/{z}/{x}/{y}.png",
		Attribution: `Map style: &copy; <a href="https://www.OpenRailwayMap.org">OpenRailwayMap</a> (CC-BY-SA)`,
		Subdomains:  "abc",
		MaxZoom:     19,
		Opacity:     1,
	}
	railwayMaxSpeed = TileLayer{
		URL:         "https://{s}.tiles.openrailwaymap.org/maxspeed/{z}/{x}/{y}.png",
		Attribution: `Map style: &copy; <a href="https://www.OpenRailwayMap.org">OpenRailwayMap</a> (CC-BY-SA)`,
		Subdomains:  "abc",
		MaxZoom:     19,
		Opacity:     1,
	}
)

// styles is ordered as presented to users.
var styles = []Style{
	{ID: StyleStandard, Title: "Standard", Base: positron},
	{ID: StyleRailway, Title: "Railways and stations", Base: positron, Overlays: []TileLayer{railwayInfrastructure}},
	{ID: StyleRailway2, Title: "Railways and stations 2", Base: openStreetMap, Overlays: []TileLayer{railwayMaxSpeed}},
}

// Styles returns every available style.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// StyleByID looks up a style.
func StyleByID(id string) (Style, bool) {
	for _, s := range styles {
		if s.ID == id {
			return s, true
		}
	}
	return Style{}, false
}
