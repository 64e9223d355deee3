package cache

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/gridkit/pkg/observability"
)

// DefaultMaxEntries bounds a MemoryCache created with a non-positive size.
const DefaultMaxEntries = 1024

// MemoryCache is an in-process cache with per-entry expiry.
//
// When full, Set evicts expired entries first and then the entry closest
// to expiry. Entries without a TTL are evicted last.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	max     int
	now     func() time.Time
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryCache creates a memory cache holding at most maxEntries values.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		entries: make(map[string]entry),
		max:     maxEntries,
		now:     time.Now,
	}
}

// Get retrieves a value from the cache. Expired entries are misses.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.expired(c.now()) {
		observability.Cache().OnCacheMiss(ctx, KeyType(key))
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, KeyType(key))
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true, nil
}

// Set stores a copy of data. A non-positive ttl never expires.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{data: make([]byte, len(data))}
	copy(e.data, data)
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evictLocked()
	}
	c.entries[key] = e
	c.mu.Unlock()

	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, including expired ones not
// yet evicted.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.max {
		return
	}

	var (
		victim string
		best   entry
		first  = true
	)
	for k, e := range c.entries {
		if first || evictsBefore(e, k, best, victim) {
			victim, best, first = k, e, false
		}
	}
	delete(c.entries, victim)
}

// evictsBefore orders eviction candidates: earliest expiry first, entries
// without a TTL last, key order as the tie-break.
func evictsBefore(a entry, ak string, b entry, bk string) bool {
	switch {
	case a.expiresAt.IsZero() != b.expiresAt.IsZero():
		return b.expiresAt.IsZero()
	case !a.expiresAt.Equal(b.expiresAt):
		return a.expiresAt.Before(b.expiresAt)
	}
	return ak < bk
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
