// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

// Package cache provides a thread-safe in-memory TTL cache.
//
// It backs two stores: the parsed city reference table and rendered map
// documents kept for download. Entries expire after the TTL; when a maximum
// entry count is set, the entry closest to expiry is evicted to make room.
//
//	docs := cache.New[*models.Document]("documents", 30*time.Minute, 256)
//	defer docs.Close()
//	docs.Set(doc.ID, doc)
//	if d, ok := docs.Get(id); ok { ... }
package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/maplegend/internal/metrics"
)

// cleanupInterval is how often expired entries are swept.
const cleanupInterval = time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats tracks cache performance.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	TotalKeys   int64     `json:"total_keys"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// Cache is a TTL cache keyed by string.
type Cache[V any] struct {
	name       string
	ttl        time.Duration
	maxEntries int

	mu      sync.RWMutex
	entries map[string]entry[V]
	stats   Stats
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache and starts its background sweep. name labels the
// cache_hits_total and cache_misses_total metrics. maxEntries <= 0 means
// unbounded.
func New[V any](name string, ttl time.Duration, maxEntries int) *Cache[V] {
	c := &Cache[V]{
		name:       name,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]entry[V]),
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	c.stats.LastCleanup = c.now()
	go c.cleanupLoop()
	return c
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		c.record(false)
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
		c.mu.Unlock()
		c.record(false)
		return zero, false
	}
	c.record(true)
	return e.value, true
}

// Set stores value with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictSoonestLocked()
	}
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.stats.TotalKeys = int64(len(c.entries))
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
	}
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Evictions += int64(len(c.entries))
	c.entries = make(map[string]entry[V])
	c.stats.TotalKeys = 0
}

// Len returns the number of stored entries, expired ones included until swept.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of cache statistics.
func (c *Cache[V]) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the hit rate as a percentage.
func (c *Cache[V]) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Close stops the background sweep. The cache stays usable.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache[V]) record(hit bool) {
	c.mu.Lock()
	if hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()
	metrics.RecordCacheLookup(c.name, hit)
}

// evictSoonestLocked must be called with mu held.
func (c *Cache[V]) evictSoonestLocked() {
	var (
		victim string
		first  = true
		soon   time.Time
	)
	for key, e := range c.entries {
		if first || e.expiresAt.Before(soon) {
			victim, soon, first = key, e.expiresAt, false
		}
	}
	if !first {
		delete(c.entries, victim)
		c.stats.Evictions++
	}
}

func (c *Cache[V]) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			c.stats.Evictions++
		}
	}
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
}
