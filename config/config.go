// Package config loads linguahub configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full configuration for the linguahub CLI and service glue.
type Config struct {
	Hub       HubConfig
	Batch     BatchConfig
	Cache     CacheConfig
	OpenAI    OpenAIConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type HubConfig struct {
	Tenant   string
	Project  string
	BaseURL  string
	Timeout  time.Duration
	MaxConns int
}

type BatchConfig struct {
	Limit int
}

type CacheConfig struct {
	Backend    string // "memory" or "redis"
	RedisURL   string
	ContentTTL time.Duration
	TokenTTL   time.Duration
}

type OpenAIConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type LogConfig struct {
	Debug bool
}

// Load reads configuration from the given file (optional) plus
// LINGUAHUB_-prefixed environment variables.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("hub.timeout", "10s")
	v.SetDefault("hub.max_conns", 4)
	v.SetDefault("batch.limit", 2000)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.content_ttl", "24h")
	v.SetDefault("cache.token_ttl", "25m")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("ratelimit.requests_per_minute", 0)
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix("LINGUAHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := Config{
		Hub: HubConfig{
			Tenant:   v.GetString("hub.tenant"),
			Project:  v.GetString("hub.project"),
			BaseURL:  v.GetString("hub.base_url"),
			Timeout:  v.GetDuration("hub.timeout"),
			MaxConns: v.GetInt("hub.max_conns"),
		},
		Batch: BatchConfig{
			Limit: v.GetInt("batch.limit"),
		},
		Cache: CacheConfig{
			Backend:    v.GetString("cache.backend"),
			RedisURL:   v.GetString("cache.redis_url"),
			ContentTTL: v.GetDuration("cache.content_ttl"),
			TokenTTL:   v.GetDuration("cache.token_ttl"),
		},
		OpenAI: OpenAIConfig{
			Enabled: v.GetBool("openai.enabled"),
			APIKey:  v.GetString("openai.api_key"),
			Model:   v.GetString("openai.model"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: v.GetInt("ratelimit.requests_per_minute"),
		},
		Log: LogConfig{
			Debug: v.GetBool("log.debug"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Hub.Tenant == "" {
		return fmt.Errorf("hub.tenant is required")
	}
	if c.Hub.Project == "" {
		return fmt.Errorf("hub.project is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be memory or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache.redis_url is required for the redis backend")
	}
	if c.Batch.Limit < 0 {
		return fmt.Errorf("batch.limit must not be negative")
	}
	return nil
}
