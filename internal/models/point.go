// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package models

import "fmt"

// LabelSeparator joins an organization name and its point count in a display label.
const LabelSeparator = " — "

// Point is a point of interest owned by an organization.
// Text fields are never empty once ingested; missing values carry placeholders.
type Point struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	City      string  `json:"city"`
	SubRegion string  `json:"subregion"`
}

// RankedOrganization is one row of the ranked table.
// Other marks the overflow bucket that folds every organization beyond the top N.
type RankedOrganization struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Label string `json:"label"`
	Other bool   `json:"other,omitempty"`
}

// FormatLabel builds the legend text for an organization.
func FormatLabel(name string, count int) string {
	return fmt.Sprintf("%s%s%d", name, LabelSeparator, count)
}

// City is one row of the city reference table.
type City struct {
	Name       string  `json:"name"`
	SubRegion  string  `json:"subregion"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Population float64 `json:"population"`
}
