// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package ranking

import "github.com/tomtom215/maplegend/internal/models"

// FallbackColor is used for the overflow bucket and any organization without a palette slot.
const FallbackColor = "grey"

// ColorMap maps named organizations to palette colors.
// The overflow bucket never has an entry.
type ColorMap struct {
	colors map[string]string
}

// AssignColors walks the ranked table in rank order, skipping the overflow
// row, and gives the i-th named organization palette[i]. Organizations beyond
// the palette length get no entry.
func AssignColors(ranked []models.RankedOrganization, palette []string) ColorMap {
	cm := ColorMap{colors: make(map[string]string, len(palette))}
	slot := 0
	for _, r := range ranked {
		if r.Other {
			continue
		}
		if slot >= len(palette) {
			break
		}
		cm.colors[r.Name] = palette[slot]
		slot++
	}
	return cm
}

// Lookup returns the color assigned to name.
func (c ColorMap) Lookup(name string) (string, bool) {
	color, ok := c.colors[name]
	return color, ok
}

// ColorFor returns the color assigned to name or FallbackColor.
func (c ColorMap) ColorFor(name string) string {
	if color, ok := c.Lookup(name); ok {
		return color
	}
	return FallbackColor
}

// Len returns the number of organizations with an assigned color.
func (c ColorMap) Len() int {
	return len(c.colors)
}

// ColorForRow resolves the color of a ranked row. The overflow row always gets
// FallbackColor, even when an input organization shares its name.
func (c ColorMap) ColorForRow(r models.RankedOrganization) string {
	if r.Other {
		return FallbackColor
	}
	return c.ColorFor(r.Name)
}
