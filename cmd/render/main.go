// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

// Command render draws maps from a spreadsheet without starting the server.
//
//	render -in points.xlsx -out ./maps -region "Самарская область" -cities
//
// One HTML file is written per map. Defaults come from the same
// configuration defaults the server uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/tomtom215/maplegend/internal/cities"
	"github.com/tomtom215/maplegend/internal/config"
	"github.com/tomtom215/maplegend/internal/generator"
	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/models"
	"github.com/tomtom215/maplegend/internal/points"
	"github.com/tomtom215/maplegend/internal/validation"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "render:", err)
		}
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.Defaults()
	opts := cfg.Render.Options()

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		in      = fs.String("in", "", "spreadsheet `path` (.xlsx)")
		out     = fs.String("out", ".", "output `directory`")
		regions listFlag
		palette = fs.String("palette", "", "comma-separated list of 12 layer colors")
		source  = fs.String("cities-source", cfg.Cities.Source, "city table `path or URL`")
		enc     = fs.String("cities-encoding", cfg.Cities.Encoding, "city table encoding: windows-1251 or utf-8")
		verbose = fs.Bool("v", false, "log progress to stderr")
	)
	fs.Var(&regions, "region", "sub-region to map; repeat for several, \""+models.AllRegions+"\" for the combined map")
	fs.StringVar(&opts.Style, "style", opts.Style, "base map style: standard, railway, railway2")
	fs.BoolVar(&opts.ShowCities, "cities", opts.ShowCities, "draw reference cities")
	fs.BoolVar(&opts.ShowMinimap, "minimap", opts.ShowMinimap, "add a minimap")
	fs.Float64Var(&opts.PointRadius, "radius", opts.PointRadius, "point radius in meters")
	fs.IntVar(&opts.Zoom, "zoom", opts.Zoom, "initial zoom level")
	fs.IntVar(&opts.TopN, "top", opts.TopN, "organizations with their own layer")
	fs.BoolVar(&opts.NormalizeNames, "normalize", opts.NormalizeNames, "abbreviate legal forms in names")
	fs.StringVar(&opts.Attribution, "attribution", opts.Attribution, "extra attribution text")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errors.New("-in is required")
	}
	if len(regions) > 0 {
		opts.Regions = regions
	}
	if *palette != "" {
		opts.Palette = strings.Split(*palette, ",")
		for i := range opts.Palette {
			opts.Palette[i] = strings.TrimSpace(opts.Palette[i])
		}
	}

	level := "warn"
	if *verbose {
		level = "info"
	}
	logging.Init(logging.Config{Level: level, Format: "console", Output: stderr})

	if verr := validation.ValidateStruct(opts); verr != nil {
		return verr
	}

	table, err := points.ReadFile(*in, points.Options{NormalizeNames: opts.NormalizeNames})
	if err != nil {
		return err
	}
	logging.Info().
		Str("sheet", table.Sheet).
		Int("kept", table.Stats.Kept).
		Int("dropped", table.Stats.Dropped).
		Msg("Spreadsheet loaded")

	var loader generator.CityLoader
	if opts.ShowCities {
		cfg.Cities.Source = *source
		cfg.Cities.Encoding = *enc
		src := cities.NewSource(&cfg.Cities)
		defer src.Close()
		loader = src
	}

	docs, err := generator.New(loader).Generate(ctx, table, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, doc := range docs {
		path := filepath.Join(*out, doc.FileName)
		if err := os.WriteFile(path, doc.HTML, 0o644); err != nil { //nolint:gosec // maps are meant to be shared
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(stdout, "%s\t%d points\t%d layers\t%d cities\n", path, doc.Points, doc.Layers, doc.Cities)
	}
	return nil
}
