// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package ranking

import (
	"fmt"
	"testing"

	"github.com/tomtom215/maplegend/internal/models"
)

// pointsFor builds points in the given name order.
func pointsFor(names ...string) []models.Point {
	pts := make([]models.Point, len(names))
	for i, n := range names {
		pts[i] = models.Point{Name: n, Address: "addr " + n, Lat: 55 + float64(i)/100, Lon: 37, City: "c", SubRegion: "r"}
	}
	return pts
}

// repeat expands name/count pairs into a point list, pairs interleaved in order.
func repeat(pairs ...any) []models.Point {
	var names []string
	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i].(string)
		n := pairs[i+1].(int)
		for j := 0; j < n; j++ {
			names = append(names, name)
		}
	}
	return pointsFor(names...)
}

func TestRankTopTwoWithTieBreak(t *testing.T) {
	pts := repeat("A", 5, "B", 3, "C", 3, "D", 1)

	got := Rank(pts, 2, "Other")

	want := []models.RankedOrganization{
		{Name: "A", Count: 5, Label: "A — 5"},
		{Name: "B", Count: 3, Label: "B — 3"},
		{Name: "Other", Count: 4, Label: "Other — 4", Other: true},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Rank) = %d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRankTieBreakFollowsFirstSeen(t *testing.T) {
	// C appears before B, so C wins the tie.
	pts := pointsFor("C", "B", "B", "C", "A")

	got := Rank(pts, 1, "Other")

	if got[0].Name != "C" {
		t.Errorf("top row = %q, want C", got[0].Name)
	}
	if got[1].Count != 3 || !got[1].Other {
		t.Errorf("overflow row = %+v, want Other with count 3", got[1])
	}
}

func TestRankNoOtherWhenFewOrganizations(t *testing.T) {
	pts := repeat("A", 2, "B", 1)

	got := Rank(pts, 12, "Other")

	if len(got) != 2 {
		t.Fatalf("len(Rank) = %d, want 2", len(got))
	}
	if _, ok := OtherRow(got); ok {
		t.Error("no overflow row expected when organizations fit in topN")
	}
}

func TestRankExactlyTopN(t *testing.T) {
	var names []string
	for i := 0; i < 12; i++ {
		names = append(names, fmt.Sprintf("org-%02d", i))
	}
	got := Rank(pointsFor(names...), 12, "Other")
	if len(got) != 12 {
		t.Errorf("len(Rank) = %d, want 12", len(got))
	}
	if _, ok := OtherRow(got); ok {
		t.Error("twelve organizations must not produce an overflow row")
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil, 12, "Other"); len(got) != 0 {
		t.Errorf("Rank(nil) = %+v, want empty", got)
	}
}

func TestRankProperties(t *testing.T) {
	// 30 organizations with counts 1..30 interleaved.
	var pts []models.Point
	for round := 0; round < 30; round++ {
		for org := round; org < 30; org++ {
			pts = append(pts, models.Point{Name: fmt.Sprintf("org-%02d", org)})
		}
	}

	ranked := Rank(pts, 12, "Other")

	if len(ranked) > 13 {
		t.Errorf("len(Rank) = %d, want at most 13", len(ranked))
	}
	others := 0
	for _, r := range ranked {
		if r.Other {
			others++
		}
	}
	if others != 1 {
		t.Errorf("overflow rows = %d, want 1", others)
	}
	if total := Total(ranked); total != len(pts) {
		t.Errorf("Total = %d, want %d", total, len(pts))
	}
	for i := 1; i < 12; i++ {
		if ranked[i].Count > ranked[i-1].Count {
			t.Errorf("row %d count %d exceeds row %d count %d", i, ranked[i].Count, i-1, ranked[i-1].Count)
		}
	}
}

func TestAssignColors(t *testing.T) {
	palette := models.DefaultPalette()
	ranked := Rank(repeat("A", 3, "B", 2, "C", 1), 12, "Other")

	cm := AssignColors(ranked, palette)

	want := map[string]string{"A": palette[0], "B": palette[1], "C": palette[2]}
	for name, color := range want {
		if got, ok := cm.Lookup(name); !ok || got != color {
			t.Errorf("Lookup(%q) = %q, %v; want %q", name, got, ok, color)
		}
	}
	if cm.Len() != 3 {
		t.Errorf("Len = %d, want 3", cm.Len())
	}
}

func TestAssignColorsSkipsOther(t *testing.T) {
	palette := []string{"#111111", "#222222"}
	ranked := Rank(repeat("A", 3, "B", 2, "C", 1), 1, "Other")

	cm := AssignColors(ranked, palette)

	if _, ok := cm.Lookup("Other"); ok {
		t.Error("overflow row must not receive a palette color")
	}
	if got := cm.ColorFor("Other"); got != FallbackColor {
		t.Errorf("ColorFor(Other) = %q, want %q", got, FallbackColor)
	}
	if got := cm.ColorFor("A"); got != "#111111" {
		t.Errorf("ColorFor(A) = %q, want #111111", got)
	}
}

func TestAssignColorsInjective(t *testing.T) {
	var names []string
	for i := 0; i < 20; i++ {
		for j := 0; j <= i; j++ {
			names = append(names, fmt.Sprintf("org-%02d", i))
		}
	}
	ranked := Rank(pointsFor(names...), 12, "Other")
	cm := AssignColors(ranked, models.DefaultPalette())

	used := make(map[string]string)
	for _, r := range ranked {
		if r.Other {
			continue
		}
		color, ok := cm.Lookup(r.Name)
		if !ok {
			t.Fatalf("named organization %q has no color", r.Name)
		}
		if prev, dup := used[color]; dup {
			t.Errorf("color %s assigned to both %q and %q", color, prev, r.Name)
		}
		used[color] = r.Name
	}
}

func TestAssignColorsShortPalette(t *testing.T) {
	ranked := Rank(repeat("A", 3, "B", 2, "C", 1), 12, "Other")
	cm := AssignColors(ranked, []string{"#111111"})

	if got := cm.ColorFor("B"); got != FallbackColor {
		t.Errorf("ColorFor(B) = %q, want fallback", got)
	}
}

func TestColorForRowOtherNamedOrganization(t *testing.T) {
	// An organization literally named "Other" still gets its own color,
	// while the overflow bucket stays grey.
	ranked := Rank(repeat("Other", 3, "B", 2, "C", 1), 1, "Other")
	cm := AssignColors(ranked, models.DefaultPalette())

	if got := cm.ColorForRow(ranked[0]); got != models.DefaultPalette()[0] {
		t.Errorf("named Other color = %q, want palette[0]", got)
	}
	if got := cm.ColorForRow(ranked[1]); got != FallbackColor {
		t.Errorf("overflow color = %q, want fallback", got)
	}
}

func TestLabelBackfillsOther(t *testing.T) {
	pts := repeat("A", 5, "B", 3, "C", 3, "D", 1)
	ranked := Rank(pts, 2, "Other")

	labeled := Label(pts, ranked, "Other")

	if len(labeled) != len(pts) {
		t.Fatalf("len(Label) = %d, want %d", len(labeled), len(pts))
	}
	for _, lp := range labeled {
		if lp.Row.Label == "" {
			t.Fatalf("point %q has empty label", lp.Name)
		}
		if (lp.Name == "C" || lp.Name == "D") && lp.Row.Label != "Other — 4" {
			t.Errorf("point %q label = %q, want Other — 4", lp.Name, lp.Row.Label)
		}
	}
}

func TestLabelSynthesizesOtherOnMiss(t *testing.T) {
	ranked := Rank(pointsFor("A"), 12, "Other")
	labeled := Label(pointsFor("A", "Z", "Y"), ranked, "Other")

	for _, lp := range labeled[1:] {
		if !lp.Row.Other || lp.Row.Label != "Other — 2" {
			t.Errorf("unmatched point %q row = %+v, want synthesized Other — 2", lp.Name, lp.Row)
		}
	}

	groups := GroupByLabel(labeled, ranked)
	if len(groups) != 2 || !groups[1].Row.Other || len(groups[1].Points) != 2 {
		t.Errorf("groups = %+v, want A then synthesized overflow with 2 points", groups)
	}
}

func TestGroupByLabelFollowsRankOrder(t *testing.T) {
	pts := pointsFor("D", "C", "A", "B", "A", "B", "A", "C", "B", "A", "A")
	ranked := Rank(pts, 2, "Other")

	groups := GroupByLabel(Label(pts, ranked, "Other"), ranked)

	wantOrder := []string{"A — 5", "B — 3", "Other — 3"}
	if len(groups) != len(wantOrder) {
		t.Fatalf("len(groups) = %d, want %d", len(groups), len(wantOrder))
	}
	total := 0
	for i, g := range groups {
		if g.Row.Label != wantOrder[i] {
			t.Errorf("group %d = %q, want %q", i, g.Row.Label, wantOrder[i])
		}
		if len(g.Points) != g.Row.Count {
			t.Errorf("group %q has %d points, want %d", g.Row.Label, len(g.Points), g.Row.Count)
		}
		total += len(g.Points)
	}
	if total != len(pts) {
		t.Errorf("grouped %d points, want %d", total, len(pts))
	}
}

func TestBuildLegend(t *testing.T) {
	opts := models.DefaultRenderOptions()
	opts.TopN = 2

	legend := BuildLegend(repeat("A", 5, "B", 3, "C", 3, "D", 1), opts)

	if len(legend.Ranked) != 3 || len(legend.Groups) != 3 {
		t.Fatalf("ranked=%d groups=%d, want 3/3", len(legend.Ranked), len(legend.Groups))
	}
	if got := legend.Colors.ColorForRow(legend.Groups[2].Row); got != FallbackColor {
		t.Errorf("overflow group color = %q, want fallback", got)
	}
	if got := legend.Colors.ColorForRow(legend.Groups[0].Row); got != opts.Palette[0] {
		t.Errorf("top group color = %q, want %q", got, opts.Palette[0])
	}
}
