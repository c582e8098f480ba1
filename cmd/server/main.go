package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neexbeast/islandhop/internal/api"
	"github.com/neexbeast/islandhop/internal/cache"
	"github.com/neexbeast/islandhop/internal/catalog"
	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/mood"
	"github.com/neexbeast/islandhop/internal/pricing"
	"github.com/neexbeast/islandhop/internal/session"
	"github.com/neexbeast/islandhop/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return err
	}

	ctx := context.Background()

	sessCfg := session.DefaultConfig()
	if cfg.RateCardPath != "" {
		rates, err := pricing.LoadRateCard(cfg.RateCardPath)
		if err != nil {
			return fmt.Errorf("loading rate card: %w", err)
		}
		sessCfg.Rates = rates
		log.Info("rate card loaded", "path", cfg.RateCardPath, "currency", rates.Currency)
	}

	// Pingers stay untyped nil when a backend is not configured.
	var dbPinger, redisPinger api.Pinger

	// Catalog source: a JSON endpoint when configured, Postgres otherwise.
	var src catalog.Source
	if cfg.DatabaseURL != "" {
		pool, err := storage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		if err := storage.RunMigrations(ctx, pool, os.DirFS(cfg.MigrationsDir)); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")

		repo := storage.NewRepository(pool)
		if cfg.SeedPath != "" {
			if err := seedLocations(ctx, repo, cfg.SeedPath, log); err != nil {
				return err
			}
		}

		src = repo
		dbPinger = pool
	}
	if cfg.CatalogBaseURL != "" {
		src = catalog.NewHTTPSource(cfg.CatalogBaseURL)
	}

	var snapCache api.SnapshotCache
	if cfg.RedisURL != "" {
		redisClient, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		c := cache.NewCache(redisClient).WithTTL(cfg.CacheTTL)
		snapCache = c
		redisPinger = c
	}

	// Wire dependencies.
	adapter := catalog.NewAdapter(geo.DefaultProfile(), mood.KeywordInferrer{})
	loader := catalog.NewLoader(src, adapter, cfg.CatalogTimeout)
	store := session.NewStore(sessCfg).WithIdleTTL(cfg.SessionTTL)
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	if cfg.SessionTTL > 0 {
		go store.RunSweeper(sweepCtx, sweepInterval(cfg.SessionTTL), log)
	}
	handlers := api.NewHandlers(loader, snapCache, store, log)

	router := api.NewRouter(handlers, dbPinger, redisPinger, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Port, "catalog_timeout", cfg.CatalogTimeout.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// seedLocations applies a JSON location seed file to the database.
func seedLocations(ctx context.Context, repo *storage.Repository, path string, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening location seed: %w", err)
	}
	defer f.Close()

	n, err := repo.SeedLocations(ctx, f)
	if err != nil {
		return fmt.Errorf("seeding locations from %s: %w", path, err)
	}
	log.Info("location seed applied", "path", path, "count", n)
	return nil
}

// sweepInterval runs the session sweeper a few times per TTL, at most once
// a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Minute)
}
