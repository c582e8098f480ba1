package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(env(map[string]string{"CATALOG_BASE_URL": "http://catalog.local"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, 8*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.SeedPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := loadConfig(env(map[string]string{
		"PORT":              "9090",
		"DATABASE_URL":      "postgres://localhost/islandhop",
		"REDIS_URL":         "redis://localhost:6379",
		"RATE_CARD_PATH":    "/etc/islandhop/rates.yaml",
		"CATALOG_TIMEOUT":   "2s",
		"CACHE_TTL":         "15m",
		"SESSION_IDLE_TTL":  "30m",
		"CATALOG_SEED_PATH": "/etc/islandhop/locations.json",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "/etc/islandhop/rates.yaml", cfg.RateCardPath)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "/etc/islandhop/locations.json", cfg.SeedPath)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no catalog source", map[string]string{}},
		{"bad timeout", map[string]string{"DATABASE_URL": "postgres://x", "CATALOG_TIMEOUT": "soon"}},
		{"bad ttl", map[string]string{"DATABASE_URL": "postgres://x", "CACHE_TTL": "forever"}},
		{"bad session ttl", map[string]string{"DATABASE_URL": "postgres://x", "SESSION_IDLE_TTL": "a while"}},
		{"seed without database", map[string]string{"CATALOG_BASE_URL": "http://x", "CATALOG_SEED_PATH": "seed.json"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(env(tc.env))
			require.Error(t, err)
		})
	}
}

func TestSweepInterval(t *testing.T) {
	assert.Equal(t, 30*time.Minute, sweepInterval(2*time.Hour))
	assert.Equal(t, time.Minute, sweepInterval(time.Minute))
}
