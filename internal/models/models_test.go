// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package models

import "testing"

func TestFormatLabel(t *testing.T) {
	if got := FormatLabel("Other", 4); got != "Other — 4" {
		t.Errorf("FormatLabel = %q, want %q", got, "Other — 4")
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if len(p) != PaletteSize {
		t.Fatalf("len(DefaultPalette()) = %d, want %d", len(p), PaletteSize)
	}
	seen := make(map[string]bool)
	for _, c := range p {
		if seen[c] {
			t.Errorf("duplicate palette color %s", c)
		}
		seen[c] = true
	}

	p[0] = "#000000"
	if DefaultPalette()[0] == "#000000" {
		t.Error("DefaultPalette must return a fresh slice")
	}
}

func TestDefaultRenderOptions(t *testing.T) {
	opts := DefaultRenderOptions()
	if opts.PointRadius != DefaultPointRadius || opts.Zoom != DefaultZoom {
		t.Errorf("radius/zoom = %v/%d, want %d/%d", opts.PointRadius, opts.Zoom, DefaultPointRadius, DefaultZoom)
	}
	if opts.TopN != DefaultTopN {
		t.Errorf("TopN = %d, want %d", opts.TopN, DefaultTopN)
	}
	if len(opts.Regions) != 1 || opts.Regions[0] != AllRegions {
		t.Errorf("Regions = %v, want [%s]", opts.Regions, AllRegions)
	}
}
