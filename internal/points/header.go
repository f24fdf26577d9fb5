// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package points

import "strings"

type field int

const (
	fieldName field = iota
	fieldAddress
	fieldLat
	fieldLon
	fieldCity
	fieldSubRegion
)

// headerAliases maps lower-cased column headers to canonical fields.
var headerAliases = map[string]field{
	"наименование": fieldName,
	"адрес":        fieldAddress,
	"широта":       fieldLat,
	"долгота":      fieldLon,
	"город":        fieldCity,
	"регион":       fieldSubRegion,

	"name":         fieldName,
	"organization": fieldName,
	"address":      fieldAddress,
	"lat":          fieldLat,
	"latitude":     fieldLat,
	"lon":          fieldLon,
	"lng":          fieldLon,
	"longitude":    fieldLon,
	"city":         fieldCity,
	"subregion":    fieldSubRegion,
	"region":       fieldSubRegion,
}

// columns holds the column index of each canonical field, -1 when absent.
type columns struct {
	name, address, lat, lon, city, subRegion int
}

// mapHeader resolves header cells to column indexes. The first matching
// column wins when a field appears twice.
func mapHeader(header []string) columns {
	cols := columns{name: -1, address: -1, lat: -1, lon: -1, city: -1, subRegion: -1}
	for i, h := range header {
		f, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		slot := cols.slot(f)
		if *slot < 0 {
			*slot = i
		}
	}
	return cols
}

func (c *columns) slot(f field) *int {
	switch f {
	case fieldName:
		return &c.name
	case fieldAddress:
		return &c.address
	case fieldLat:
		return &c.lat
	case fieldLon:
		return &c.lon
	case fieldCity:
		return &c.city
	default:
		return &c.subRegion
	}
}
