// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

// Package cities loads the city reference table and selects the cities drawn
// as translucent population circles behind the point layers.
//
// The table is a delimited file (";" and windows-1251 by default) read from a
// local path or fetched over HTTP. Remote fetches pass through a rate limiter
// and a circuit breaker, and parsed results are cached with a TTL:
//
//	src := cities.NewSource(&cfg.Cities)
//	defer src.Close()
//	all, err := src.Load(ctx)
//	shown := cities.FilterByNames(all, points.Cities(pts))
package cities

import "github.com/tomtom215/maplegend/internal/models"

// MinRadius is the smallest circle radius in meters.
const MinRadius = 6000

// populationPerMeter converts population to circle radius.
const populationPerMeter = 60

// Radius returns the circle radius in meters for a city population.
func Radius(population float64) float64 {
	r := population / populationPerMeter
	if r <= MinRadius {
		return MinRadius
	}
	return r
}

// FilterByNames keeps cities whose name appears in names. Order follows all.
func FilterByNames(all []models.City, names []string) []models.City {
	if len(names) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	var out []models.City
	for _, c := range all {
		if _, ok := wanted[c.Name]; ok {
			out = append(out, c)
		}
	}
	return out
}

// BySubRegion keeps cities located in region.
func BySubRegion(all []models.City, region string) []models.City {
	var out []models.City
	for _, c := range all {
		if c.SubRegion == region {
			out = append(out, c)
		}
	}
	return out
}
