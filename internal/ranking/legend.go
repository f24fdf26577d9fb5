// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package ranking

import "github.com/tomtom215/maplegend/internal/models"

// Legend bundles the ranked table, its color map and the layer groups of one map.
type Legend struct {
	Ranked []models.RankedOrganization
	Colors ColorMap
	Groups []Group
}

// BuildLegend runs rank, color assignment, join and grouping over points.
func BuildLegend(points []models.Point, opts models.RenderOptions) Legend {
	ranked := Rank(points, opts.TopN, opts.OtherLabel)
	labeled := Label(points, ranked, opts.OtherLabel)
	return Legend{
		Ranked: ranked,
		Colors: AssignColors(ranked, opts.Palette),
		Groups: GroupByLabel(labeled, ranked),
	}
}
