// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/maplegend/internal/api"
	"github.com/tomtom215/maplegend/internal/cities"
	"github.com/tomtom215/maplegend/internal/config"
	"github.com/tomtom215/maplegend/internal/generator"
	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/metrics"
	"github.com/tomtom215/maplegend/internal/supervisor"
	"github.com/tomtom215/maplegend/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("cities_source", cfg.Cities.Source).
		Str("default_style", cfg.Render.Style).
		Int64("upload_max_bytes", cfg.Upload.MaxBytes).
		Msg("Starting Maplegend with supervisor tree")

	citySource := cities.NewSource(&cfg.Cities)
	defer citySource.Close()

	handler := api.NewHandler(cfg, generator.New(citySource), citySource)
	defer handler.Close()
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Cities.RefreshInterval > 0 {
		tree.AddDataService(services.NewCityRefreshService(citySource, cfg.Cities.RefreshInterval))
		logging.Info().Dur("interval", cfg.Cities.RefreshInterval).Msg("City refresh service added")
	} else {
		logging.Info().Msg("City refresh disabled, table loads on first use")
	}

	httpService := services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).
		OnDrain(func() { handler.SetDraining(true) })
	tree.AddAPIService(httpService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Maplegend stopped")
}
