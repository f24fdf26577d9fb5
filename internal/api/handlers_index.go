// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package api

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/mapview"
	"github.com/tomtom215/maplegend/internal/models"
)

//go:embed templates/index.html.tmpl
var indexTemplateText string

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(indexTemplateText))

type indexData struct {
	Styles      []mapview.Style
	Defaults    models.RenderOptions
	AllRegions  string
	MinRadius   int
	MaxRadius   int
	MinZoom     int
	MaxZoom     int
	MaxUploadMB int64
}

// Index serves the upload page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Styles:      mapview.Styles(),
		Defaults:    h.config.Render.Options(),
		AllRegions:  models.AllRegions,
		MinRadius:   models.MinPointRadius,
		MaxRadius:   models.MaxPointRadius,
		MinZoom:     models.MinZoom,
		MaxZoom:     models.MaxZoom,
		MaxUploadMB: h.config.Upload.MaxBytes >> 20,
	}

	// Render to a buffer so a template error still yields a clean 500.
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render index page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}
