package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linguahub.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "hub:\n  tenant: acme\n  project: forum\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Hub.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Hub.Timeout)
	}
	if cfg.Hub.MaxConns != 4 {
		t.Errorf("MaxConns = %d, want 4", cfg.Hub.MaxConns)
	}
	if cfg.Batch.Limit != 2000 {
		t.Errorf("Batch.Limit = %d, want 2000", cfg.Batch.Limit)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.ContentTTL != 24*time.Hour {
		t.Errorf("ContentTTL = %v, want 24h", cfg.Cache.ContentTTL)
	}
	if cfg.Cache.TokenTTL != 25*time.Minute {
		t.Errorf("TokenTTL = %v, want 25m", cfg.Cache.TokenTTL)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
hub:
  tenant: acme
  project: forum
  timeout: 30s
  max_conns: 8
batch:
  limit: 1500
cache:
  backend: redis
  redis_url: redis://localhost:6379
openai:
  enabled: true
  api_key: sk-test
ratelimit:
  requests_per_minute: 120
log:
  debug: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Hub.Timeout != 30*time.Second || cfg.Hub.MaxConns != 8 {
		t.Errorf("Hub = %+v", cfg.Hub)
	}
	if cfg.Batch.Limit != 1500 {
		t.Errorf("Batch.Limit = %d", cfg.Batch.Limit)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if !cfg.OpenAI.Enabled || cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("OpenAI = %+v", cfg.OpenAI)
	}
	if cfg.RateLimit.RequestsPerMinute != 120 {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if !cfg.Log.Debug {
		t.Error("Log.Debug not set")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LINGUAHUB_HUB_TENANT", "envcorp")
	t.Setenv("LINGUAHUB_HUB_PROJECT", "forum")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Hub.Tenant != "envcorp" {
		t.Errorf("Tenant = %q, want envcorp", cfg.Hub.Tenant)
	}
}

func TestLoad_MissingTenant(t *testing.T) {
	path := writeConfig(t, "hub:\n  project: forum\n")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "tenant") {
		t.Fatalf("err = %v, want tenant validation error", err)
	}
}

func TestLoad_RedisWithoutURL(t *testing.T) {
	path := writeConfig(t, `
hub:
  tenant: acme
  project: forum
cache:
  backend: redis
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "redis_url") {
		t.Fatalf("err = %v, want redis_url validation error", err)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	path := writeConfig(t, `
hub:
  tenant: acme
  project: forum
cache:
  backend: memcached
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected backend validation error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/linguahub.yaml"); err == nil {
		t.Fatal("expected read error")
	}
}
