// Package cache provides TTL key-value stores for tokens and translations.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store with per-entry TTL. It backs both the vendor
// auth token cache and the rendered-translation cache.
type Cache interface {
	// Get retrieves a value. Returns empty string and false if the key is
	// absent or expired.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value. A zero or negative ttl means no expiration.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
