// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

// Package generator turns an ingested point table into HTML map documents,
// one per selected region or a single combined map.
//
// Each document runs the full pipeline independently: rank organizations,
// assign colors, label and group points, then draw cities and point layers on
// a fresh canvas.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/maplegend/internal/cities"
	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/mapview"
	"github.com/tomtom215/maplegend/internal/metrics"
	"github.com/tomtom215/maplegend/internal/models"
	"github.com/tomtom215/maplegend/internal/points"
	"github.com/tomtom215/maplegend/internal/ranking"
)

var (
	// ErrUnknownRegion is returned when a selected region has no rows in the table.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrCitiesUnavailable is returned when cities are requested but no source is configured.
	ErrCitiesUnavailable = errors.New("city layer requested but no city source is configured")
)

// Combined map file name.
const overallFileName = "Overall map.html"

// CityLoader provides the city reference table.
type CityLoader interface {
	Load(ctx context.Context) ([]models.City, error)
}

// Generator renders map documents.
type Generator struct {
	cities CityLoader
	now    func() time.Time
}

// New creates a generator. src may be nil when no city layer is ever drawn.
func New(src CityLoader) *Generator {
	return &Generator{cities: src, now: time.Now}
}

// FileName returns the download name for a region's map.
func FileName(region string) string {
	if region == models.AllRegions {
		return overallFileName
	}
	safe := strings.NewReplacer("/", "_", "\\", "_", "\"", "'").Replace(region)
	return safe + " - map.html"
}

// Targets resolves the requested regions into the ordered list of maps to draw.
// An empty selection means the combined map. Duplicates are dropped.
func Targets(opts models.RenderOptions) []string {
	if len(opts.Regions) == 0 {
		return []string{models.AllRegions}
	}
	out := make([]string, 0, len(opts.Regions))
	for _, r := range opts.Regions {
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

// Generate renders one document per target region. It fails fast: an unknown
// region or an empty map aborts the whole request.
func (g *Generator) Generate(ctx context.Context, table *points.Table, opts models.RenderOptions) ([]models.Document, error) {
	targets := Targets(opts)
	known := table.SubRegions()
	for _, region := range targets {
		if region != models.AllRegions && !slices.Contains(known, region) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
		}
	}

	var reference []models.City
	if opts.ShowCities {
		if g.cities == nil {
			return nil, ErrCitiesUnavailable
		}
		all, err := g.cities.Load(ctx)
		if err != nil {
			return nil, err
		}
		reference = all
	}

	docs := make([]models.Document, 0, len(targets))
	for _, region := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pts := table.Points
		if region != models.AllRegions {
			pts = table.InRegion(region)
		}

		var shown []models.City
		if opts.ShowCities {
			// Always narrow from the full table so one region's filter never leaks into the next.
			shown = cities.FilterByNames(reference, points.Cities(pts))
			if region != models.AllRegions {
				shown = cities.BySubRegion(shown, region)
			}
		}

		doc, err := g.render(ctx, region, pts, shown, opts)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (g *Generator) render(ctx context.Context, region string, pts []models.Point, shown []models.City, opts models.RenderOptions) (models.Document, error) {
	start := g.now()
	ctx = logging.ContextWithNewRenderID(ctx)
	logger := logging.Ctx(ctx)

	canvas, err := mapview.NewCanvas(pts, opts)
	if err != nil {
		metrics.RecordRenderFailure(errors.Is(err, mapview.ErrNoData))
		return models.Document{}, fmt.Errorf("region %q: %w", region, err)
	}

	legend := ranking.BuildLegend(pts, opts)
	canvas.AddCities(shown)
	canvas.AddPointLayers(legend.Groups, legend.Colors, opts.PointRadius)
	if opts.Attribution != "" {
		canvas.AddAttribution(opts.Attribution)
	}

	var buf bytes.Buffer
	if err := canvas.RenderTitled(&buf, region); err != nil {
		metrics.RecordRenderFailure(false)
		return models.Document{}, fmt.Errorf("region %q: %w", region, err)
	}

	doc := models.Document{
		ID:        uuid.NewString(),
		Region:    region,
		FileName:  FileName(region),
		HTML:      buf.Bytes(),
		Points:    canvas.PointCount(),
		Layers:    len(canvas.Layers()),
		Cities:    canvas.CityCount(),
		CreatedAt: start,
	}

	duration := g.now().Sub(start)
	metrics.RecordRender(opts.Style, duration, doc.Points, doc.Layers)
	logger.Info().
		Str("region", region).
		Str("style", opts.Style).
		Int("points", doc.Points).
		Int("layers", doc.Layers).
		Int("cities", doc.Cities).
		Int("bytes", doc.Size()).
		Dur("duration", duration).
		Msg("Map rendered")

	return doc, nil
}
