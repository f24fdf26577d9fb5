// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package ranking

import "github.com/tomtom215/maplegend/internal/models"

// LabeledPoint is a point joined to its ranked row.
type LabeledPoint struct {
	models.Point
	Row models.RankedOrganization
}

// Group is one legend layer: a ranked row and every point carrying its label.
type Group struct {
	Row    models.RankedOrganization
	Points []models.Point
}

// Label left-joins points to the ranked table by organization name.
// A point whose organization has no named row is assigned the overflow row.
// If the table has no overflow row, one is synthesized from otherLabel with
// the number of unmatched points as its count, so no point is ever dropped.
func Label(points []models.Point, ranked []models.RankedOrganization, otherLabel string) []LabeledPoint {
	byName := make(map[string]models.RankedOrganization, len(ranked))
	for _, r := range ranked {
		if !r.Other {
			byName[r.Name] = r
		}
	}

	other, hasOther := OtherRow(ranked)
	if !hasOther {
		misses := 0
		for _, p := range points {
			if _, ok := byName[p.Name]; !ok {
				misses++
			}
		}
		other = models.RankedOrganization{
			Name:  otherLabel,
			Count: misses,
			Label: models.FormatLabel(otherLabel, misses),
			Other: true,
		}
	}

	labeled := make([]LabeledPoint, len(points))
	for i, p := range points {
		row, ok := byName[p.Name]
		if !ok {
			row = other
		}
		labeled[i] = LabeledPoint{Point: p, Row: row}
	}
	return labeled
}

// GroupByLabel partitions labeled points by display label. Groups follow the
// ranked table order; a synthesized overflow group comes last. Points keep
// their input order inside a group and empty groups are omitted.
func GroupByLabel(labeled []LabeledPoint, ranked []models.RankedOrganization) []Group {
	members := make(map[groupKey][]models.Point)
	for _, lp := range labeled {
		key := keyOf(lp.Row)
		members[key] = append(members[key], lp.Point)
	}

	groups := make([]Group, 0, len(members))
	for _, r := range ranked {
		key := keyOf(r)
		pts, ok := members[key]
		if !ok {
			continue
		}
		groups = append(groups, Group{Row: r, Points: pts})
		delete(members, key)
	}

	// Only the synthesized overflow row can be left at this point.
	for _, lp := range labeled {
		key := keyOf(lp.Row)
		pts, ok := members[key]
		if !ok {
			continue
		}
		groups = append(groups, Group{Row: lp.Row, Points: pts})
		delete(members, key)
	}

	return groups
}

// groupKey keeps an organization literally named like the overflow bucket
// apart from the bucket itself.
type groupKey struct {
	label string
	other bool
}

func keyOf(r models.RankedOrganization) groupKey {
	return groupKey{label: r.Label, other: r.Other}
}
