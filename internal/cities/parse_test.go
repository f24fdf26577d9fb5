// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package cities

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const sampleTable = `CityName;SubRegion;Latitude;Longitude;Population;Extra
Казань;Татарстан;55.7887;49.1221;1257391;x
Самара;Самарская область;53,1959;50,1002;1 144 759;x
Broken;Nowhere;not-a-number;10;100;x
;Nameless;1;1;1;x
Тольятти;Самарская область;53.5303;49.3461;707408
`

func encode1251(t *testing.T, s string) string {
	t.Helper()
	out, err := charmap.Windows1251.NewEncoder().String(s)
	if err != nil {
		t.Fatalf("encode windows-1251: %v", err)
	}
	return out
}

func TestParseWindows1251(t *testing.T) {
	got, err := Parse(strings.NewReader(encode1251(t, sampleTable)), ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Parse() returned %d cities, want 3: %+v", len(got), got)
	}

	kazan := got[0]
	if kazan.Name != "Казань" || kazan.SubRegion != "Татарстан" {
		t.Errorf("first city = %+v, want Казань/Татарстан", kazan)
	}
	if kazan.Lat != 55.7887 || kazan.Lon != 49.1221 || kazan.Population != 1257391 {
		t.Errorf("first city numbers = %+v", kazan)
	}

	samara := got[1]
	if samara.Lat != 53.1959 || samara.Population != 1144759 {
		t.Errorf("comma decimals and grouped digits not parsed: %+v", samara)
	}
}

func TestParseUTF8CustomSeparator(t *testing.T) {
	in := "cityname,subregion,latitude,longitude,population\nУфа,Башкортостан,54.7348,55.9579,1144809\n"
	got, err := Parse(strings.NewReader(in), ParseOptions{Encoding: "utf-8", Separator: ","})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Уфа" {
		t.Errorf("Parse() = %+v, want Уфа", got)
	}
}

func TestParseHeaderWithBOM(t *testing.T) {
	in := "\ufeffCityName;SubRegion;Latitude;Longitude;Population\nОмск;Омская область;54.98;73.37;1110836\n"
	got, err := Parse(strings.NewReader(in), ParseOptions{Encoding: "utf-8"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Parse() = %+v, want one city", got)
	}
}

func TestParseMissingColumn(t *testing.T) {
	in := "CityName;SubRegion;Latitude;Longitude\nОмск;Омская область;54.98;73.37\n"
	_, err := Parse(strings.NewReader(in), ParseOptions{Encoding: "utf-8"})
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Parse() error = %v, want ErrMissingColumn", err)
	}
	if !strings.Contains(err.Error(), "population") {
		t.Errorf("error %q does not name the column", err)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader(""), ParseOptions{}); err == nil {
		t.Error("Parse(empty) error = nil, want header error")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"55.75", 55.75, true},
		{"55,75", 55.75, true},
		{"1 000 000", 1000000, true},
		{"1\u00a0000", 1000, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"nan", 0, false},
		{"Inf", 0, false},
		{"+Inf", 0, false},
		{"-inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSkipsNonFiniteRows(t *testing.T) {
	table := "CityName;SubRegion;Latitude;Longitude;Population\n" +
		"Казань;Татарстан;55.79;49.12;1257391\n" +
		"Нигде;Татарстан;NaN;49.0;1000\n" +
		"Бесконечск;Татарстан;55.0;49.0;Inf\n"

	got, err := Parse(strings.NewReader(table), ParseOptions{Encoding: "utf-8"})
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Казань" {
		t.Errorf("Parse = %+v, want only Казань", got)
	}
}
