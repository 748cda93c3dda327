// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the shloka console HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Configure tracing for content API calls.
//  4. Connect to PostgreSQL (pgxpool) and run migrations.
//  5. Connect to Redis.
//  6. Wire domain services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/shloka-console/data/migrations"
	"github.com/taibuivan/shloka-console/internal/api"
	"github.com/taibuivan/shloka-console/internal/assist"
	"github.com/taibuivan/shloka-console/internal/catalog"
	"github.com/taibuivan/shloka-console/internal/editor"
	"github.com/taibuivan/shloka-console/internal/journal"
	"github.com/taibuivan/shloka-console/internal/library"
	"github.com/taibuivan/shloka-console/internal/platform/config"
	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/platform/middleware"
	"github.com/taibuivan/shloka-console/internal/platform/migration"
	pgstore "github.com/taibuivan/shloka-console/internal/platform/postgres"
	redisstore "github.com/taibuivan/shloka-console/internal/platform/redis"
	"github.com/taibuivan/shloka-console/internal/platform/sec"
	"github.com/taibuivan/shloka-console/internal/platform/telemetry"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("content_api", cfg.StrapiURL),
		slog.String("assist_provider", cfg.AssistProvider),
	)

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Tracing ────────────────────────────────────────────────────────
	shutdownTracing, err := telemetry.Setup(startupCtx, telemetry.Options{
		ServiceName: constants.AppName,
		Endpoint:    cfg.OtelEndpoint,
		Enabled:     cfg.OtelEnabled,
	}, log)
	must(log, err, "configure tracing")
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Error("tracing_shutdown_failed", slog.Any("error", err))
		}
	}()

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, pgstore.Options{DSN: cfg.DatabaseURL, MaxConns: cfg.DatabaseMaxConns}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	var schema fs.FS = migrations.Files
	if cfg.MigrationPath != "" {
		schema = os.DirFS(cfg.MigrationPath)
	}
	must(log, migration.RunUp(cfg.DatabaseURL, schema, log), "run migrations")

	// ── 5. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, redisstore.Options{URL: cfg.RedisURL, PoolSize: cfg.RedisPoolSize}, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("redis_client_closing")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 6. Console Tokens ─────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{Checks: []api.Check{
		{Name: "postgres", Probe: pgstore.Probe(pool)},
		{Name: "redis", Probe: redisstore.Probe(rdb)},
	}}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	content := strapi.New(cfg.UpstreamTimeout)

	sessions := auth.NewSessionRepository(rdb)
	authService := auth.NewService(content, sessions, tokens, cfg.StrapiURL, cfg.SessionTTL)

	journalService := journal.NewService(journal.NewPostgresRepository(pool))
	editorService := editor.NewService(editor.NewDraftRepository(rdb), content, journalService, cfg.DraftTTL)

	assistant, err := newAssistant(startupCtx, cfg, content)
	must(log, err, "initialize assist provider")

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, sessions, middleware.RateLimit(rootCtx, middleware.LoginLimits)),
		Catalog:   catalog.NewHandler(catalog.NewService(content)),
		Drafts:    editor.NewHandler(editorService),
		Library:   library.NewHandler(library.NewService(content)),
		Assist:    assist.NewHandler(assist.NewService(assistant)),
		History:   journal.NewHandler(journalService),
	}

	server := api.NewServer(rootCtx, cfg, log, tokens, sessions, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// newAssistant selects the AI assist provider.
func newAssistant(ctx context.Context, cfg *config.Config, content *strapi.Client) (assist.Assistant, error) {
	if cfg.AssistProvider == assist.ProviderGemini {
		gemini, err := assist.NewGemini(ctx, assist.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
		if err != nil {
			return nil, err
		}
		return gemini, nil
	}
	return assist.NewUpstream(content), nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
