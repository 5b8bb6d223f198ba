package cache

import (
	"context"
	"sync"
	"time"
)

// entry holds a cached value with its expiry.
type entry struct {
	value     string
	expiresAt time.Time // zero time means no expiry
}

// Memory is a thread-safe in-memory cache with per-entry TTL.
type Memory struct {
	entries map[string]entry
	mu      sync.RWMutex
}

// NewMemory creates a new in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
	}
}

// Get retrieves a value. Expired entries are cleaned up on access.
func (c *Memory) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}

	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}

	return e.value, true
}

// Set stores a value with the given TTL.
func (c *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	return nil
}

// Len returns the number of entries in the cache (including expired ones).
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *Memory) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Entries returns all non-expired entries as key-value pairs.
// This is used for cache snapshots.
func (c *Memory) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]string)
	now := time.Now()

	for key, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			continue
		}
		result[key] = e.value
	}

	return result
}

// Verify Memory implements Cache
var _ Cache = (*Memory)(nil)
