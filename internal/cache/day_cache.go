// Package cache keeps one BillboardDay per trading day in memory so a
// session does not hammer the upstream API for data that only changes once
// a day.
package cache

import (
	"sync"
	"time"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
)

type entry struct {
	day       *models.BillboardDay
	expiresAt time.Time
}

// DayCache is a TTL cache keyed by the 8-digit trading day string.
type DayCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewDayCache creates a cache whose entries expire ttl after Set.
func NewDayCache(ttl time.Duration) *DayCache {
	return &DayCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Tests use this to step past the TTL
// without sleeping.
func (c *DayCache) WithClock(now func() time.Time) *DayCache {
	c.now = now
	return c
}

func (c *DayCache) Get(dateKey string) (*models.BillboardDay, bool) {
	c.mu.RLock()
	e, ok := c.entries[dateKey]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, dateKey)
		c.mu.Unlock()
		return nil, false
	}
	return e.day, true
}

// Set stores a day. A non-positive TTL disables the cache entirely.
func (c *DayCache) Set(dateKey string, day *models.BillboardDay) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[dateKey] = entry{day: day, expiresAt: c.now().Add(c.ttl)}
}
