package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "INFO", cfg.Server.LogLevel)
	assert.Equal(t, 15, cfg.Search.MaxResults)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout())
	assert.Equal(t, 16, cfg.Search.MaxConcurrency)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 100, cfg.Cache.Capacity)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerMinute)
	assert.False(t, cfg.Search.StrictMode)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  log_level: DEBUG
search:
  strict_mode: true
  max_results: 5
  provider_timeout_seconds: 3
cache:
  backend: memory
  ttl_minutes: 2
  capacity: 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "DEBUG", cfg.Server.LogLevel)
	assert.True(t, cfg.Search.StrictMode)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout())
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 10, cfg.Cache.Capacity)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SEARCH_STRICT_MODE", "true")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("RENTCAST_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port, "environment beats file")
	assert.True(t, cfg.Search.StrictMode)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "env-key", cfg.Providers.RentCast.APIKey)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Run("invalid port env", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "not-a-number")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("port out of range", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 70000\n")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("unknown cache backend", func(t *testing.T) {
		path := writeConfig(t, "cache:\n  backend: memcached\n")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "server: [not a map\n")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}
