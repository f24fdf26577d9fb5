// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package cities

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/maplegend/internal/models"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("city table is missing a required column")

// Column headers of the reference table.
const (
	colName       = "cityname"
	colSubRegion  = "subregion"
	colLatitude   = "latitude"
	colLongitude  = "longitude"
	colPopulation = "population"
)

var requiredColumns = []string{colName, colSubRegion, colLatitude, colLongitude, colPopulation}

// ParseOptions describes the file layout.
type ParseOptions struct {
	Encoding  string // windows-1251 (default) or utf-8
	Separator string // single character, default ";"
}

// Parse reads a city table. Rows whose coordinates or population do not parse
// are skipped.
func Parse(r io.Reader, opts ParseOptions) ([]models.City, error) {
	reader := csv.NewReader(decode(r, opts.Encoding))
	reader.Comma = separator(opts.Separator)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read city table header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var out []models.City
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read city table: %w", err)
		}

		city, ok := parseCity(record, idx)
		if ok {
			out = append(out, city)
		}
	}
	return out, nil
}

func parseCity(record []string, idx map[string]int) (models.City, bool) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field(colName)
	if name == "" {
		return models.City{}, false
	}
	lat, ok1 := parseNumber(field(colLatitude))
	lon, ok2 := parseNumber(field(colLongitude))
	pop, ok3 := parseNumber(field(colPopulation))
	if !ok1 || !ok2 || !ok3 {
		return models.City{}, false
	}
	return models.City{
		Name:       name,
		SubRegion:  field(colSubRegion),
		Lat:        lat,
		Lon:        lon,
		Population: pop,
	}, true
}

// parseNumber accepts a comma decimal separator and space digit grouping.
// Non-finite values are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func decode(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		return r
	default:
		return charmap.Windows1251.NewDecoder().Reader(r)
	}
}

func separator(s string) rune {
	if s == "" {
		return ';'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
