// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package services

import (
	"context"
	"time"

	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/models"
)

// CityRefresher reloads the city reference table.
// Satisfied by *cities.Source.
type CityRefresher interface {
	Refresh(ctx context.Context) ([]models.City, error)
}

// CityRefreshService keeps the city table warm by reloading it on a fixed
// interval. The first load happens immediately so the first render with
// cities enabled does not pay for the fetch.
//
// A failed refresh is logged and retried on the next tick. The source keeps
// serving its previous table, so the service never returns an error to the
// supervisor for it.
type CityRefreshService struct {
	source   CityRefresher
	interval time.Duration
	name     string
}

// NewCityRefreshService creates the refresher. interval must be positive.
func NewCityRefreshService(source CityRefresher, interval time.Duration) *CityRefreshService {
	return &CityRefreshService{
		source:   source,
		interval: interval,
		name:     "city-refresh",
	}
}

// Serve implements suture.Service.
func (s *CityRefreshService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(s.name)
	ctx = logging.ContextWithLogger(ctx, logger)

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CityRefreshService) refresh(ctx context.Context) {
	table, err := s.source.Refresh(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logging.Ctx(ctx).Warn().Err(err).Dur("retry_in", s.interval).Msg("City table refresh failed")
		}
		return
	}
	logging.Ctx(ctx).Debug().Int("cities", len(table)).Msg("City table refreshed")
}

// String implements fmt.Stringer.
func (s *CityRefreshService) String() string {
	return s.name
}
