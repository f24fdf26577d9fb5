// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package cities

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tomtom215/maplegend/internal/cache"
	"github.com/tomtom215/maplegend/internal/config"
	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/metrics"
	"github.com/tomtom215/maplegend/internal/models"
)

// ErrSourceUnavailable is returned when the reference table cannot be loaded.
var ErrSourceUnavailable = errors.New("city reference table unavailable")

const (
	cacheName = "cities"
	cacheKey  = "table"
)

// Source loads and caches the city reference table.
// The returned slices are shared between callers and must not be modified.
type Source struct {
	cfg     config.CitiesConfig
	cache   *cache.Cache[[]models.City]
	fetcher *httpFetcher // nil for local files

	mu sync.Mutex // serializes reloads
}

// NewSource creates a source for cfg. Call Close to stop the cache sweeper.
func NewSource(cfg *config.CitiesConfig) *Source {
	s := &Source{
		cfg:   *cfg,
		cache: cache.New[[]models.City](cacheName, cfg.CacheTTL, 1),
	}
	if config.IsRemoteSource(cfg.Source) {
		s.fetcher = newHTTPFetcher(cfg.Source, cfg.FetchTimeout, cfg.FetchInterval)
	}
	return s
}

// Kind reports "http" for remote sources and "file" otherwise.
func (s *Source) Kind() string {
	if s.fetcher != nil {
		return "http"
	}
	return "file"
}

// Status describes the source for health checks.
type Status struct {
	Kind    string `json:"kind"`
	Loaded  bool   `json:"loaded"`
	Breaker string `json:"breaker,omitempty"`
}

// Status reports whether a table is cached and, for remote sources, the
// circuit breaker state. It never triggers a load.
func (s *Source) Status() Status {
	st := Status{Kind: s.Kind(), Loaded: s.cache.Len() > 0}
	if s.fetcher != nil {
		st.Breaker = stateToString(s.fetcher.State())
	}
	return st
}

// Load returns the cached table, loading it on a miss.
func (s *Source) Load(ctx context.Context) ([]models.City, error) {
	if table, ok := s.cache.Get(cacheKey); ok {
		return table, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have loaded it while we waited.
	if table, ok := s.cache.Get(cacheKey); ok {
		return table, nil
	}
	return s.reloadLocked(ctx)
}

// Refresh reloads the table unconditionally. On failure the previously
// cached table, if any, stays in place.
func (s *Source) Refresh(ctx context.Context) ([]models.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

// Close stops the cache sweeper.
func (s *Source) Close() {
	s.cache.Close()
}

func (s *Source) reloadLocked(ctx context.Context) ([]models.City, error) {
	start := time.Now()
	table, err := s.read(ctx)
	metrics.RecordCitySourceFetch(s.Kind(), time.Since(start), len(table), err)

	logger := logging.Ctx(ctx).With().Str("source", s.cfg.Source).Str("kind", s.Kind()).Logger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load city reference table")
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	s.cache.Set(cacheKey, table)
	logger.Info().Int("cities", len(table)).Dur("duration", time.Since(start)).Msg("City reference table loaded")
	return table, nil
}

func (s *Source) read(ctx context.Context) ([]models.City, error) {
	var (
		raw []byte
		err error
	)
	if s.fetcher != nil {
		raw, err = s.fetcher.Fetch(ctx)
	} else {
		raw, err = os.ReadFile(s.cfg.Source)
	}
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(raw), ParseOptions{
		Encoding:  s.cfg.Encoding,
		Separator: s.cfg.Separator,
	})
}
