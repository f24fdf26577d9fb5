// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/maplegend/internal/cache"
	"github.com/tomtom215/maplegend/internal/cities"
	"github.com/tomtom215/maplegend/internal/config"
	"github.com/tomtom215/maplegend/internal/metrics"
	"github.com/tomtom215/maplegend/internal/middleware"
	"github.com/tomtom215/maplegend/internal/models"
	"github.com/tomtom215/maplegend/internal/points"
)

// Renderer produces map documents from an ingested table.
type Renderer interface {
	Generate(ctx context.Context, table *points.Table, opts models.RenderOptions) ([]models.Document, error)
}

// CityStatus reports the city source state without loading it.
type CityStatus interface {
	Status() cities.Status
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, document store
//   - handlers_health.go: liveness, readiness and performance
//   - handlers_maps.go: options, regions, render, download and preview
//   - handlers_index.go: upload page
type Handler struct {
	config    *config.Config
	renderer  Renderer
	cities    CityStatus // nil when no city source is configured
	documents *cache.Cache[*models.Document]
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
	draining  atomic.Bool
}

// NewHandler creates the API handler. src may be nil.
//
// Example:
//
//	handler := api.NewHandler(cfg, generator.New(src), src)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(cfg *config.Config, renderer Renderer, src CityStatus) *Handler {
	return &Handler{
		config:    cfg,
		renderer:  renderer,
		cities:    src,
		documents: cache.New[*models.Document]("documents", cfg.Documents.TTL, cfg.Documents.MaxEntries),
		perfMon:   middleware.NewPerformanceMonitor(1000),
		startTime: time.Now(),
	}
}

// PerformanceMonitor returns the monitor the router installs.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// SetDraining makes the readiness probe fail so load balancers stop routing
// new uploads during shutdown.
func (h *Handler) SetDraining(draining bool) {
	h.draining.Store(draining)
}

// Close stops the document store sweeper.
func (h *Handler) Close() {
	h.documents.Close()
	metrics.StoredDocuments.Set(0)
}

func (h *Handler) storeDocuments(docs []models.Document) {
	for i := range docs {
		doc := docs[i]
		h.documents.Set(doc.ID, &doc)
	}
	metrics.StoredDocuments.Set(float64(h.documents.Len()))
}

func (h *Handler) document(id string) (*models.Document, error) {
	doc, ok := h.documents.Get(id)
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}
