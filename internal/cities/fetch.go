// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package cities

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/maplegend/internal/logging"
	"github.com/tomtom215/maplegend/internal/metrics"
)

// maxTableBytes caps the downloaded table size.
const maxTableBytes = 64 << 20

// breakerName labels the circuit breaker metrics.
const breakerName = "city-source"

// httpFetcher downloads the reference table through a rate limiter and a
// circuit breaker.
//
// The breaker uses real time for its interval and timeout. Tests exercise it
// with a failing httptest server rather than a fake clock.
type httpFetcher struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
}

// newHTTPFetcher creates a fetcher. interval is the minimum spacing between
// requests; zero disables the limiter.
//
// Circuit breaker configuration:
//   - 1 probe request in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - opens after 3 consecutive failures
func newHTTPFetcher(url string, timeout, interval time.Duration) *httpFetcher {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= 3
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &httpFetcher{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
		cb:      cb,
	}
}

// Fetch downloads the table body.
func (f *httpFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for fetch slot: %w", err)
	}

	body, err := f.cb.Execute(func() ([]byte, error) {
		return f.get(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return body, nil
}

// State returns the breaker state.
func (f *httpFetcher) State() gobreaker.State {
	return f.cb.State()
}

func (f *httpFetcher) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTableBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxTableBytes {
		return nil, fmt.Errorf("city table exceeds %d bytes", maxTableBytes)
	}
	return body, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
