// Package cache keeps finished archival documents in memory.
package cache

import (
	"sync"
	"time"

	"slack-archiver/internal/domain"
)

const sweepInterval = time.Minute

// MemoryCache is a TTL cache of archival documents.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type cacheEntry struct {
	agg       *domain.ComponentsAggregate
	expiresAt time.Time
}

// NewMemoryCache starts a cache whose entries live for ttl. Call Close to
// stop the background sweep.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	c := newMemoryCache(ttl, time.Now)
	go c.sweepLoop(sweepInterval)
	return c
}

func newMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Get returns the document stored under key unless it has expired.
func (c *MemoryCache) Get(key string) (*domain.ComponentsAggregate, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.agg, true
}

// Set stores agg under key, replacing any previous entry.
func (c *MemoryCache) Set(key string, agg *domain.ComponentsAggregate) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{agg: agg, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len counts stored entries, expired ones included until swept.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background sweep. It is safe to call more than once.
func (c *MemoryCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *MemoryCache) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) sweep() {
	now := c.now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
