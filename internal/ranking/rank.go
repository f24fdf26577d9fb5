// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

// Package ranking ranks organizations by point count, assigns palette colors
// and groups points into legend layers.
//
// Every function is pure: the same points and options always produce the
// same output, and nothing depends on the HTML renderer.
package ranking

import (
	"sort"

	"github.com/tomtom215/maplegend/internal/models"
)

type tally struct {
	name      string
	count     int
	firstSeen int
}

// Rank counts points per organization and keeps the topN largest.
// Ties are broken by first appearance in points. Everything ranked below topN
// is folded into a single overflow row named otherLabel; when nothing is
// folded there is no overflow row.
func Rank(points []models.Point, topN int, otherLabel string) []models.RankedOrganization {
	if len(points) == 0 {
		return nil
	}
	if topN < 0 {
		topN = 0
	}

	index := make(map[string]int)
	tallies := make([]tally, 0)
	for i, p := range points {
		if j, ok := index[p.Name]; ok {
			tallies[j].count++
			continue
		}
		index[p.Name] = len(tallies)
		tallies = append(tallies, tally{name: p.Name, count: 1, firstSeen: i})
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].count != tallies[j].count {
			return tallies[i].count > tallies[j].count
		}
		return tallies[i].firstSeen < tallies[j].firstSeen
	})

	keep := min(topN, len(tallies))
	ranked := make([]models.RankedOrganization, 0, keep+1)
	for _, t := range tallies[:keep] {
		ranked = append(ranked, models.RankedOrganization{
			Name:  t.name,
			Count: t.count,
			Label: models.FormatLabel(t.name, t.count),
		})
	}

	if rest := tallies[keep:]; len(rest) > 0 {
		merged := 0
		for _, t := range rest {
			merged += t.count
		}
		ranked = append(ranked, models.RankedOrganization{
			Name:  otherLabel,
			Count: merged,
			Label: models.FormatLabel(otherLabel, merged),
			Other: true,
		})
	}

	return ranked
}

// Total returns the sum of counts across the ranked table.
func Total(ranked []models.RankedOrganization) int {
	total := 0
	for _, r := range ranked {
		total += r.Count
	}
	return total
}

// OtherRow returns the overflow row, if the table has one.
func OtherRow(ranked []models.RankedOrganization) (models.RankedOrganization, bool) {
	for _, r := range ranked {
		if r.Other {
			return r, true
		}
	}
	return models.RankedOrganization{}, false
}
