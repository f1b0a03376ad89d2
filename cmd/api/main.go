// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Sommelier HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Load the first catalog snapshot.
//  7. Wire HTTP handlers.
//  8. Run the HTTP server, the refresh ticker and the change watcher until a
//     signal arrives, then shut down gracefully.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/sommelier/internal/api"
	"github.com/taibuivan/sommelier/internal/core/discovery"
	"github.com/taibuivan/sommelier/internal/core/match"
	"github.com/taibuivan/sommelier/internal/core/wine"
	"github.com/taibuivan/sommelier/internal/platform/config"
	"github.com/taibuivan/sommelier/internal/platform/constants"
	"github.com/taibuivan/sommelier/internal/platform/metrics"
	"github.com/taibuivan/sommelier/internal/platform/migration"
	pgstore "github.com/taibuivan/sommelier/internal/platform/postgres"
	redisstore "github.com/taibuivan/sommelier/internal/platform/redis"
	"github.com/taibuivan/sommelier/internal/platform/sec"
	"github.com/taibuivan/sommelier/internal/users/preference"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Duration("catalog_refresh_interval", cfg.CatalogRefreshInterval),
	)

	weights, err := cfg.MatchWeights()
	must(log, err, "validate match weights")

	// Root context for startup. A deadline catches misconfiguration quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("redis_client_closing")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Catalog Snapshot ───────────────────────────────────────────────
	// The first load is mandatory; serving an empty catalog would look healthy.
	catalog := wine.NewProvider(wine.NewPostgresRepository(pool), log)
	facetCache := discovery.NewFacetCache(rdb, cfg.FacetCacheTTL, log)
	catalog.OnSwap(facetCache.Invalidate)

	_, err = catalog.Reload(startupCtx, wine.TriggerStartup)
	must(log, err, "load catalog snapshot")

	// ── 7. Token Verification ─────────────────────────────────────────────
	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CatalogStats: func() (wine.Stats, error) {
			snapshot, err := catalog.Current()
			if err != nil {
				return wine.Stats{}, err
			}
			return snapshot.Stats(), nil
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	profileService := preference.NewService(
		preference.NewPostgresRepository(pool),
		preference.BreakerSettings{Failures: cfg.ProfileBreakerFailures, Timeout: cfg.ProfileBreakerTimeout},
		log,
	)
	discoveryService := discovery.NewService(catalog, profileService, match.NewScorer(weights), facetCache, log)

	// ── 10. Lifecycle ─────────────────────────────────────────────────────
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := api.NewServer(runCtx, cfg, log, verifier, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Metrics:    metrics.Handler(),
		Discovery:  discovery.NewHandler(discoveryService),
		Preference: preference.NewHandler(profileService),
	})

	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return catalog.Refresh(groupCtx, cfg.CatalogRefreshInterval)
	})

	group.Go(func() error {
		return catalog.Watch(groupCtx, rdb)
	})

	// Shut the server down once a signal arrives or any task fails.
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
		return server.Shutdown(constants.ShutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		log.Error("server_stopped_with_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
