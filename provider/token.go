package provider

import (
	"context"
	"time"
)

// tokenSource resolves a vendor auth token through a TTL cache, fetching a
// fresh one on miss.
//
// There is deliberately no application-level lock around the fetch:
// concurrent callers that both see an expired token both fetch, the vendor
// tolerates duplicate issuance, and the last write wins. The cache's own
// atomicity is the only guard.
type tokenSource struct {
	cache tokenCache
	key   string
	ttl   time.Duration
	fetch func(ctx context.Context) (string, error)
}

// tokenCache is the subset of the cache interface the token source needs.
type tokenCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// token returns a valid token, fetching and caching one when absent or
// expired.
func (s *tokenSource) token(ctx context.Context) (string, error) {
	if s.cache != nil {
		if token, ok := s.cache.Get(ctx, s.key); ok {
			return token, nil
		}
	}

	token, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		// Cache set failures degrade to refetching next call.
		_ = s.cache.Set(ctx, s.key, token, s.ttl)
	}
	return token, nil
}

// tokenCacheKey namespaces the cached token per tenant and project.
func tokenCacheKey(tenant, project string) string {
	return "token:" + tenant + ":" + project
}
