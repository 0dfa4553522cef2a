package cache

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a process-local cache with per-entry expiry. A zero TTL
// keeps entries until the process exits.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the stored value when present and not expired. Expired
// entries are removed on access.
func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

// Set stores the value, stamping the expiry from the cache TTL.
func (c *MemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := memoryEntry{value: value}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}
	c.entries[key] = entry
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
