package cache

import "time"

// NewMemoryCacheWithClock builds a cache without the background sweep and
// with a controllable clock.
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryCache {
	return newMemoryCache(ttl, now)
}

func (c *MemoryCache) Sweep() { c.sweep() }
