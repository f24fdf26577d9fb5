// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

// Package points reads point-of-interest spreadsheets into models.Point rows.
//
// The first worksheet is read. Column headers are matched case-insensitively
// against Russian and English names. Rows without valid coordinates are
// dropped and counted; blank text fields receive placeholder values so no
// field is ever empty downstream.
package points

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/maplegend/internal/metrics"
	"github.com/tomtom215/maplegend/internal/models"
)

// Placeholders for blank text fields.
const (
	PlaceholderName      = "name not specified"
	PlaceholderAddress   = "address not specified"
	PlaceholderCity      = "city not specified"
	PlaceholderSubRegion = "region not specified"
)

var (
	// ErrUnsupportedFormat is returned for legacy binary workbooks.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrMissingCoordinates is returned when the latitude or longitude column is absent.
	ErrMissingCoordinates = errors.New("latitude and longitude columns are required")

	// ErrEmptyWorkbook is returned when the first sheet has no header row.
	ErrEmptyWorkbook = errors.New("spreadsheet has no header row")
)

// supportedExtensions are the workbook formats excelize can open.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// Options controls ingest behavior.
type Options struct {
	// NormalizeNames abbreviates legal forms in organization names.
	NormalizeNames bool
}

// Stats summarizes one ingest.
type Stats struct {
	Rows    int `json:"rows"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
}

// Table is an ingested spreadsheet.
type Table struct {
	Sheet  string         `json:"sheet"`
	Points []models.Point `json:"-"`
	Stats  Stats          `json:"stats"`
}

// CheckExtension rejects file names whose extension excelize cannot read.
// An empty name is accepted.
func CheckExtension(name string) error {
	if name == "" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !supportedExtensions[ext] {
		return fmt.Errorf("%w: %q (save the workbook as .xlsx)", ErrUnsupportedFormat, ext)
	}
	return nil
}

// ReadFile opens and ingests the workbook at path.
func ReadFile(path string, opts Options) (*Table, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read ingests a workbook from r.
func Read(r io.Reader, opts Options) (*Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer func() { _ = wb.Close() }()

	sheet := wb.GetSheetName(0)
	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	table, err := parseRows(rows, opts)
	if err != nil {
		return nil, err
	}
	table.Sheet = sheet
	metrics.RecordIngest(table.Stats.Kept, table.Stats.Dropped)
	return table, nil
}

func parseRows(rows [][]string, opts Options) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	cols := mapHeader(rows[0])
	if cols.lat < 0 || cols.lon < 0 {
		return nil, ErrMissingCoordinates
	}

	table := &Table{Points: make([]models.Point, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		table.Stats.Rows++

		lat, latOK := parseCoordinate(cell(row, cols.lat), 90)
		lon, lonOK := parseCoordinate(cell(row, cols.lon), 180)
		if !latOK || !lonOK {
			table.Stats.Dropped++
			continue
		}

		name := orPlaceholder(cell(row, cols.name), PlaceholderName)
		if opts.NormalizeNames {
			name = NormalizeName(name)
		}

		table.Points = append(table.Points, models.Point{
			Name:      name,
			Address:   orPlaceholder(cell(row, cols.address), PlaceholderAddress),
			Lat:       lat,
			Lon:       lon,
			City:      orPlaceholder(cell(row, cols.city), PlaceholderCity),
			SubRegion: orPlaceholder(cell(row, cols.subRegion), PlaceholderSubRegion),
		})
	}
	table.Stats.Kept = len(table.Points)
	return table, nil
}

// parseCoordinate accepts both decimal separators and rejects values outside
// ±limit. NaN and infinities count as missing.
func parseCoordinate(s string, limit float64) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v >= -limit && v <= limit) {
		return 0, false
	}
	return v, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// SubRegions returns distinct subregions in first-seen order.
func (t *Table) SubRegions() []string {
	seen := make(map[string]bool)
	regions := make([]string, 0)
	for _, p := range t.Points {
		if !seen[p.SubRegion] {
			seen[p.SubRegion] = true
			regions = append(regions, p.SubRegion)
		}
	}
	return regions
}

// InRegion returns the points of one subregion.
func (t *Table) InRegion(region string) []models.Point {
	var out []models.Point
	for _, p := range t.Points {
		if p.SubRegion == region {
			out = append(out, p)
		}
	}
	return out
}

// Cities returns the distinct city names referenced by points.
func Cities(pts []models.Point) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, p := range pts {
		if !seen[p.City] {
			seen[p.City] = true
			names = append(names, p.City)
		}
	}
	return names
}
