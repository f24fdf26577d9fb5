// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache[V any](t *testing.T, ttl time.Duration, maxEntries int) (*Cache[V], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[V]("test", ttl, maxEntries)
	c.now = clock.Now
	t.Cleanup(c.Close)
	return c, clock
}

func TestGetSet(t *testing.T) {
	c, _ := newTestCache[string](t, time.Minute, 0)

	c.Set("a", "alpha")
	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("Get(a) = %q, %v; want alpha, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 key", stats)
	}
	if rate := c.HitRate(); rate != 50 {
		t.Errorf("HitRate = %v, want 50", rate)
	}
}

func TestExpiry(t *testing.T) {
	c, clock := newTestCache[int](t, time.Minute, 0)

	c.Set("short", 1)
	c.SetWithTTL("long", 2, time.Hour)
	clock.Advance(2 * time.Minute)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry returned")
	}
	if v, ok := c.Get("long"); !ok || v != 2 {
		t.Errorf("Get(long) = %d, %v; want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 after lazy eviction", c.Len())
	}
}

func TestCleanup(t *testing.T) {
	c, clock := newTestCache[int](t, time.Minute, 0)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	clock.Advance(time.Hour)

	c.cleanup()

	if c.Len() != 0 {
		t.Errorf("Len = %d after cleanup, want 0", c.Len())
	}
	if got := c.GetStats().Evictions; got != 5 {
		t.Errorf("Evictions = %d, want 5", got)
	}
}

func TestMaxEntriesEvictsSoonestExpiry(t *testing.T) {
	c, clock := newTestCache[int](t, time.Minute, 2)

	c.Set("first", 1)
	clock.Advance(time.Second)
	c.Set("second", 2)
	clock.Advance(time.Second)
	c.Set("third", 3)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get("third"); !ok {
		t.Error("newest entry missing")
	}

	// Overwriting an existing key never evicts.
	c.Set("third", 33)
	if c.Len() != 2 {
		t.Errorf("Len after overwrite = %d, want 2", c.Len())
	}
}

func TestDeleteAndClear(t *testing.T) {
	c, _ := newTestCache[string](t, time.Minute, 0)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	c.Delete("never-set")
	if c.Len() != 1 {
		t.Errorf("Len after Delete = %d, want 1", c.Len())
	}

	c.Clear()
	if c.Len() != 0 || c.GetStats().TotalKeys != 0 {
		t.Errorf("Clear left %d entries", c.Len())
	}
	if got := c.GetStats().Evictions; got != 2 {
		t.Errorf("Evictions = %d, want 2", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int]("concurrent", time.Minute, 64)
	defer c.Close()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (w*200+i)%100)
				c.Set(key, i)
				c.Get(key)
			}
		}(w)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len = %d, exceeds max 64", c.Len())
	}
}

func TestCloseIdempotent(t *testing.T) {
	c := New[int]("close", time.Minute, 0)
	c.Close()
	c.Close()
}
