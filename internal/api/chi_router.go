// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/maplegend/internal/config"
	"github.com/tomtom215/maplegend/internal/middleware"
)

// Router sets up HTTP routes using the chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	maxUpload     int64
}

// NewRouter creates a router for handler using the security and upload sections of cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFrom(&cfg.Security)),
		maxUpload:     cfg.Upload.MaxBytes,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(SecurityHeaders())
	r.Use(router.handler.PerformanceMonitor().Middleware)
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("no route for " + r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method "+r.Method+" not allowed")
	})

	// promhttp negotiates its own compression
	r.With(router.chiMiddleware.RateLimitHealth()).Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compression)

		r.With(router.chiMiddleware.RateLimit("index")).Get("/", router.handler.Index)

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/health", func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitHealth())
				r.Get("/live", router.handler.HealthLive)
				r.Get("/ready", router.handler.HealthReady)
				r.Get("/performance", router.handler.HealthPerformance)
			})

			r.With(router.chiMiddleware.RateLimit("options")).Get("/options", router.handler.Options)

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimit("upload"))
				r.Use(middleware.MaxBytes(router.maxUpload))
				r.Post("/regions", router.handler.Regions)
				r.Post("/maps", router.handler.CreateMaps)
			})

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimit("documents"))
				r.Get("/maps/{id}", router.handler.DownloadMap)
				r.Head("/maps/{id}", router.handler.DownloadMap)
				r.Get("/maps/{id}/preview", router.handler.PreviewMap)
			})
		})
	})

	return r
}
