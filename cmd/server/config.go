package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/neexbeast/islandhop/internal/catalog"
	"github.com/neexbeast/islandhop/internal/session"
)

type config struct {
	Port           string
	DatabaseURL    string
	CatalogBaseURL string
	RedisURL       string
	RateCardPath   string
	MigrationsDir  string
	SeedPath       string
	CatalogTimeout time.Duration
	CacheTTL       time.Duration
	SessionTTL     time.Duration
}

// loadConfig reads the server configuration from the environment.
func loadConfig(getenv func(string) string) (config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := config{
		Port:           get("PORT", "8080"),
		DatabaseURL:    getenv("DATABASE_URL"),
		CatalogBaseURL: getenv("CATALOG_BASE_URL"),
		RedisURL:       getenv("REDIS_URL"),
		RateCardPath:   getenv("RATE_CARD_PATH"),
		MigrationsDir:  get("MIGRATIONS_DIR", "migrations"),
		SeedPath:       getenv("CATALOG_SEED_PATH"),
	}

	if cfg.DatabaseURL == "" && cfg.CatalogBaseURL == "" {
		return config{}, errors.New("one of DATABASE_URL or CATALOG_BASE_URL must be set")
	}
	if cfg.SeedPath != "" && cfg.DatabaseURL == "" {
		return config{}, errors.New("CATALOG_SEED_PATH requires DATABASE_URL")
	}

	var err error
	if cfg.CatalogTimeout, err = time.ParseDuration(get("CATALOG_TIMEOUT", catalog.DefaultFetchTimeout.String())); err != nil {
		return config{}, fmt.Errorf("parsing CATALOG_TIMEOUT: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(get("CACHE_TTL", "1h")); err != nil {
		return config{}, fmt.Errorf("parsing CACHE_TTL: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_IDLE_TTL", session.DefaultIdleTTL.String())); err != nil {
		return config{}, fmt.Errorf("parsing SESSION_IDLE_TTL: %w", err)
	}

	return cfg, nil
}
