// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package points

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory xlsx from rows.
func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellName, &rows[i]); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf
}

func TestReadRussianHeaders(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Наименование", "Адрес", "Широта", "Долгота", "Город", "Регион"},
		{"Ромашка", "ул. Ленина, 1", 55.75, 37.61, "Москва", "Московская область"},
		{"", "", "59,93", "30,31", "", ""},
		{"Лютик", "пр. Мира, 2", "", 37.5, "Москва", "Московская область"},
	})

	table, err := Read(buf, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if table.Stats != (Stats{Rows: 3, Kept: 2, Dropped: 1}) {
		t.Errorf("Stats = %+v, want rows=3 kept=2 dropped=1", table.Stats)
	}
	first := table.Points[0]
	if first.Name != "Ромашка" || first.Lat != 55.75 || first.Lon != 37.61 || first.City != "Москва" {
		t.Errorf("first point = %+v", first)
	}
	second := table.Points[1]
	if second.Lat != 59.93 || second.Lon != 30.31 {
		t.Errorf("comma decimals parsed as %v,%v; want 59.93,30.31", second.Lat, second.Lon)
	}
	if second.Name != PlaceholderName || second.Address != PlaceholderAddress ||
		second.City != PlaceholderCity || second.SubRegion != PlaceholderSubRegion {
		t.Errorf("blank fields not filled with placeholders: %+v", second)
	}
}

func TestReadEnglishHeaders(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{" Latitude ", "LONGITUDE", "Name", "Region"},
		{10.5, 20.5, "Acme", "North"},
		{},
		{91.0, 20.5, "Acme", "North"},
	})

	table, err := Read(buf, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if table.Stats.Kept != 1 || table.Stats.Dropped != 1 {
		t.Errorf("Stats = %+v, want kept=1 dropped=1 (out-of-range latitude)", table.Stats)
	}
	if table.Points[0].SubRegion != "North" {
		t.Errorf("SubRegion = %q, want North", table.Points[0].SubRegion)
	}
}

func TestReadMissingCoordinateColumn(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Name", "Latitude"},
		{"Acme", 10.0},
	})

	_, err := Read(buf, Options{})
	if !errors.Is(err, ErrMissingCoordinates) {
		t.Errorf("err = %v, want ErrMissingCoordinates", err)
	}
}

func TestReadNotAWorkbook(t *testing.T) {
	_, err := Read(bytes.NewBufferString("name;lat;lon\n"), Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestReadNormalizesNames(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Наименование", "Широта", "Долгота"},
		{"Общество с ограниченной ответственностью  Ромашка", 55.0, 37.0},
		{"ооо Ромашка", 55.1, 37.1},
	})

	table, err := Read(buf, Options{NormalizeNames: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	for _, p := range table.Points {
		if p.Name != "ООО РОМАШКА" {
			t.Errorf("Name = %q, want ООО РОМАШКА", p.Name)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.xlsx")
	buf := workbook(t, [][]interface{}{
		{"lat", "lon"},
		{1.0, 2.0},
	})
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(table.Points) != 1 || table.Sheet == "" {
		t.Errorf("table = %+v", table)
	}

	if _, err := ReadFile(filepath.Join(dir, "legacy.xls"), Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ReadFile(.xls) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCheckExtension(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"points.xlsx", false},
		{"POINTS.XLSM", false},
		{"points.xls", true},
		{"points.xlsb", true},
		{"points.csv", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckExtension(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckExtension(%q) = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestSubRegionsAndInRegion(t *testing.T) {
	rows := [][]string{
		{"name", "lat", "lon", "region", "city"},
		{"a", "1", "1", "South", "X"},
		{"b", "1", "1", "North", "Y"},
		{"c", "1", "1", "South", "X"},
	}
	table, err := parseRows(rows, Options{})
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}

	if got := table.SubRegions(); !reflect.DeepEqual(got, []string{"South", "North"}) {
		t.Errorf("SubRegions = %v, want [South North]", got)
	}
	if got := table.InRegion("South"); len(got) != 2 {
		t.Errorf("InRegion(South) = %d points, want 2", len(got))
	}
	if got := Cities(table.Points); !reflect.DeepEqual(got, []string{"X", "Y"}) {
		t.Errorf("Cities = %v, want [X Y]", got)
	}
}

func TestParseRowsDropsNonFiniteCoordinates(t *testing.T) {
	rows := [][]string{
		{"name", "address", "lat", "lon"},
		{"A", "x", "55.75", "37.6"},
		{"A", "x", "NaN", "37.6"},
		{"A", "x", "55.75", "nan"},
		{"A", "x", "Inf", "37.6"},
		{"A", "x", "55.75", "-Inf"},
	}
	table, err := parseRows(rows, Options{})
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if table.Stats != (Stats{Rows: 5, Kept: 1, Dropped: 4}) {
		t.Errorf("Stats = %+v, want {Rows:5 Kept:1 Dropped:4}", table.Stats)
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"55.75", 55.75, true},
		{"55,75", 55.75, true},
		{"-90", -90, true},
		{"90.5", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCoordinate(tt.in, 90)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseCoordinate(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseRowsEmpty(t *testing.T) {
	if _, err := parseRows(nil, Options{}); !errors.Is(err, ErrEmptyWorkbook) {
		t.Errorf("err = %v, want ErrEmptyWorkbook", err)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Публичное акционерное общество Магнит", "ПАО МАГНИТ"},
		{"Акционерное общество Тандер", "АО ТАНДЕР"},
		{"открытое акционерное общество РЖД", "ОАО РЖД"},
		{"  Acme   Corp ", "ACME CORP"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
