// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package api

import (
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/mapview"
	"github.com/tomtom215/maplegend/internal/models"
	"github.com/tomtom215/maplegend/internal/points"
	"github.com/tomtom215/maplegend/internal/validation"
)

// StyleOption describes a selectable map style.
type StyleOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Bounds is an inclusive numeric range for a form control.
type Bounds struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// OptionsResponse lists everything the upload form needs to render itself.
type OptionsResponse struct {
	Styles      []StyleOption        `json:"styles"`
	Palette     []string             `json:"palette"`
	PointRadius Bounds               `json:"point_radius"`
	Zoom        Bounds               `json:"zoom"`
	AllRegions  string               `json:"all_regions"`
	Defaults    models.RenderOptions `json:"defaults"`
	MaxUpload   int64                `json:"max_upload_bytes"`
}

// RegionsResponse reports what an uploaded workbook contains.
type RegionsResponse struct {
	FileName string       `json:"file_name"`
	Sheet    string       `json:"sheet"`
	Stats    points.Stats `json:"stats"`
	Regions  []string     `json:"regions"`
	Choices  []string     `json:"choices"`
}

// DocumentInfo is the metadata of one rendered map.
type DocumentInfo struct {
	models.Document
	Bytes       int       `json:"bytes"`
	DownloadURL string    `json:"download_url"`
	PreviewURL  string    `json:"preview_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MapsResponse is returned by the render endpoint.
type MapsResponse struct {
	FileName  string         `json:"file_name"`
	Stats     points.Stats   `json:"stats"`
	Documents []DocumentInfo `json:"documents"`
}

// Options returns styles, the default palette and slider bounds.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	defaults := h.config.Render.Options()

	styles := mapview.Styles()
	out := make([]StyleOption, len(styles))
	for i, s := range styles {
		out[i] = StyleOption{ID: s.ID, Title: s.Title}
	}

	WriteSuccess(w, r, OptionsResponse{
		Styles:  out,
		Palette: defaults.Palette,
		PointRadius: Bounds{
			Min:     models.MinPointRadius,
			Max:     models.MaxPointRadius,
			Default: defaults.PointRadius,
		},
		Zoom: Bounds{
			Min:     models.MinZoom,
			Max:     models.MaxZoom,
			Default: float64(defaults.Zoom),
		},
		AllRegions: models.AllRegions,
		Defaults:   defaults,
		MaxUpload:  h.config.Upload.MaxBytes,
	})
}

// Regions ingests an uploaded workbook and lists the subregions it contains,
// so a client can offer them before asking for a render.
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondParseError(w, r, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	normalize, err := formBool(r.MultipartForm.Value, fieldNormalizeNames, h.config.Render.NormalizeNames)
	if err != nil {
		respondError(w, r, err)
		return
	}

	table, name, err := ingestUpload(r, normalize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	regions := table.SubRegions()
	WriteSuccess(w, r, RegionsResponse{
		FileName: name,
		Sheet:    table.Sheet,
		Stats:    table.Stats,
		Regions:  regions,
		Choices:  append([]string{models.AllRegions}, regions...),
	})
}

// CreateMaps ingests an uploaded workbook and renders one map per selected
// region. Documents are kept for download until the store TTL expires.
func (h *Handler) CreateMaps(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondParseError(w, r, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	opts, err := renderOptionsFromForm(r.MultipartForm.Value, h.config.Render.Options())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if verr := validation.ValidateStruct(opts); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return
	}

	table, name, err := ingestUpload(r, opts.NormalizeNames)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logger := logging.Ctx(r.Context())
	logger.Info().
		Str("file", name).
		Int("points", table.Stats.Kept).
		Int("dropped", table.Stats.Dropped).
		Strs("regions", opts.Regions).
		Str("style", opts.Style).
		Bool("cities", opts.ShowCities).
		Msg("Rendering maps")

	docs, err := h.renderer.Generate(r.Context(), table, opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.storeDocuments(docs)

	expires := time.Now().Add(h.config.Documents.TTL)
	infos := make([]DocumentInfo, len(docs))
	for i, doc := range docs {
		infos[i] = DocumentInfo{
			Document:    doc,
			Bytes:       doc.Size(),
			DownloadURL: "/api/v1/maps/" + doc.ID,
			PreviewURL:  "/api/v1/maps/" + doc.ID + "/preview",
			ExpiresAt:   expires,
		}
	}

	NewResponseWriter(w, r).Created(MapsResponse{
		FileName:  name,
		Stats:     table.Stats,
		Documents: infos,
	})
}

// DownloadMap serves a rendered map as an attachment.
func (h *Handler) DownloadMap(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, "attachment")
}

// PreviewMap serves a rendered map inline.
func (h *Handler) PreviewMap(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, "inline")
}

func (h *Handler) serveDocument(w http.ResponseWriter, r *http.Request, disposition string) {
	doc, err := h.document(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	// FormatMediaType switches to RFC 2231 encoding for non-ASCII region names.
	cd := mime.FormatMediaType(disposition, map[string]string{"filename": doc.FileName})
	if cd == "" {
		cd = disposition
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", cd)
	w.Header().Set("Content-Length", strconv.Itoa(doc.Size()))
	w.Header().Set("Cache-Control", "private, no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(doc.HTML); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("document", doc.ID).Msg("Failed to write map document")
	}
}

// respondParseError reports a failed multipart parse. Oversized uploads keep
// their 413; anything else is a malformed request.
func respondParseError(w http.ResponseWriter, r *http.Request, err error) {
	if class := classify(err); class.status == http.StatusRequestEntityTooLarge {
		respondError(w, r, err)
		return
	}
	NewResponseWriter(w, r).BadRequest("expected a multipart/form-data upload: " + err.Error())
}
