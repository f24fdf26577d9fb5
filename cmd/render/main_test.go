// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/maplegend/internal/validation"
)

func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	rows := [][]interface{}{
		{"Наименование", "Адрес", "Широта", "Долгота", "Город", "Регион"},
		{"Альфа", "ул. 1", 55.79, 49.12, "Казань", "Татарстан"},
		{"Бета", "ул. 2", 55.74, 52.40, "Набережные Челны", "Татарстан"},
		{"Альфа", "ул. 3", 53.20, 50.10, "Самара", "Самарская область"},
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i := range rows {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cellName, &rows[i]); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "points.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesOneFilePerRegion(t *testing.T) {
	dir := t.TempDir()
	in := writeWorkbook(t, dir)
	out := filepath.Join(dir, "maps")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-in", in, "-out", out,
		"-region", "Татарстан", "-region", "Самарская область",
		"-style", "railway", "-zoom", "9",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run error = %v (stderr: %s)", err, stderr.String())
	}

	for _, name := range []string{"Татарстан - map.html", "Самарская область - map.html"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), "openrailwaymap") {
			t.Errorf("%s does not use the railway style", name)
		}
	}
	if lines := strings.Count(stdout.String(), "\n"); lines != 2 {
		t.Errorf("stdout has %d lines, want 2:\n%s", lines, stdout.String())
	}
}

func TestRunCombinedMapWithCities(t *testing.T) {
	dir := t.TempDir()
	in := writeWorkbook(t, dir)
	table := "cityname;subregion;latitude;longitude;population\n" +
		"Казань;Татарстан;55.79;49.12;1257391\n" +
		"Самара;Самарская область;53.2;50.1;1144759\n"
	citiesPath := filepath.Join(dir, "cities.csv")
	if err := os.WriteFile(citiesPath, []byte(table), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-in", in, "-out", dir, "-cities",
		"-cities-source", citiesPath, "-cities-encoding", "utf-8",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run error = %v (stderr: %s)", err, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "Overall map.html")); err != nil {
		t.Fatalf("combined map not written: %v", err)
	}
	if !strings.Contains(stdout.String(), "2 cities") {
		t.Errorf("stdout = %q, want 2 cities drawn", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeWorkbook(t, dir)

	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{"missing input", []string{}, func(err error) bool { return err != nil }},
		{"help", []string{"-h"}, func(err error) bool { return errors.Is(err, flag.ErrHelp) }},
		{"bad zoom", []string{"-in", in, "-zoom", "40"}, func(err error) bool {
			var verr *validation.RequestValidationError
			return errors.As(err, &verr)
		}},
		{"unsupported extension", []string{"-in", filepath.Join(dir, "points.csv")}, func(err error) bool {
			return err != nil && strings.Contains(err.Error(), ".csv")
		}},
		{"unknown region", []string{"-in", in, "-out", dir, "-region", "Чукотка"}, func(err error) bool {
			return err != nil && strings.Contains(err.Error(), "Чукотка")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if !tt.check(err) {
				t.Errorf("run(%v) error = %v", tt.args, err)
			}
		})
	}
}
