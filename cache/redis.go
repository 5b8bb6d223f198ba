package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Redis-backed cache. This is the shared external store from
// which every forum worker reads the same vendor token.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379")
	KeyPrefix string // Prefix for all keys (default: "linguahub:")
}

// NewRedis creates a new Redis cache with the given configuration.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "linguahub:"
	}

	return &Redis{
		client:    client,
		keyPrefix: prefix,
	}, nil
}

// NewRedisFromClient creates a Redis cache from an existing client.
func NewRedisFromClient(client *redis.Client, keyPrefix string) *Redis {
	if keyPrefix == "" {
		keyPrefix = "linguahub:"
	}

	return &Redis{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value from Redis.
func (c *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		// Treat errors as cache misses; callers refetch.
		return "", false
	}
	return val, true
}

// Set stores a value in Redis with the given TTL.
func (c *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err()
}

// Close closes the Redis connection.
func (c *Redis) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Verify Redis implements Cache
var _ Cache = (*Redis)(nil)
