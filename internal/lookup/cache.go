package lookup

import (
	"sync"
	"time"
)

const DefaultTTL = 24 * time.Hour

type entry struct {
	loc      Location
	storedAt time.Time
}

// Cache is the process-local store behind the Resolver. Entries past the
// TTL stop counting as hits but are not deleted; they stay available to
// the stale-fallback path until ClearExpired is invoked explicitly.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   func() time.Time
}

type CacheOption func(*Cache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.clock = now
	}
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached location while it is fresh. An expired entry is
// absent for this call but not evicted.
func (c *Cache) Get(code string) (Location, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.entries[code]; ok {
		if c.clock().Sub(cached.storedAt) < c.ttl {
			return cached.loc, true
		}
	}
	return Location{}, false
}

// GetStale returns the cached location regardless of age, with the age.
func (c *Cache) GetStale(code string) (Location, time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.entries[code]; ok {
		return cached.loc, c.clock().Sub(cached.storedAt), true
	}
	return Location{}, 0, false
}

// Set upserts with the current timestamp.
func (c *Cache) Set(code string, loc Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[code] = entry{loc: loc, storedAt: c.clock()}
}

// ClearExpired evicts only entries past the TTL and reports how many went.
// Never called automatically; callers sweep opportunistically.
func (c *Cache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock()
	evicted := 0
	for code, cached := range c.entries {
		if now.Sub(cached.storedAt) >= c.ttl {
			delete(c.entries, code)
			evicted++
		}
	}
	return evicted
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
