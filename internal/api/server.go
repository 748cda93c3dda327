// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the console HTTP server: the middleware chain, the
health probes and every route group under /api/v1.

Only /health, /ready and /api/v1/auth/login are reachable without a session.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/shloka-console/internal/assist"
	"github.com/taibuivan/shloka-console/internal/catalog"
	"github.com/taibuivan/shloka-console/internal/editor"
	"github.com/taibuivan/shloka-console/internal/journal"
	"github.com/taibuivan/shloka-console/internal/library"
	"github.com/taibuivan/shloka-console/internal/platform/config"
	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/platform/middleware"
	"github.com/taibuivan/shloka-console/internal/users/auth"
)

// Server owns the router and the listening [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the route sets mounted by [NewServer]. Every set except
// Auth sits behind [middleware.RequireSession].
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Catalog *catalog.Handler
	Drafts  *editor.Handler
	Library *library.Handler
	Assist  *assist.Handler
	History *journal.Handler
}

// NewServer builds the router and the [http.Server] listening on cfg.ServerPort.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, resolver middleware.SessionResolver, handlers Handlers) *Server {
	router := chi.NewRouter()

	// CORS runs before anything that can reject, so browsers can read the error.
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		middleware.CORS(cfg),
		middleware.PanicRecovery(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(context, middleware.DefaultLimits),
		middleware.BodyLimit(middleware.DefaultBodyLimit),
		chimw.CleanPath,
		middleware.Authenticate(verifier),
	)

	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/auth", handlers.Auth.Routes())

		v1.Group(func(console chi.Router) {
			console.Use(middleware.RequireSession(resolver))

			console.Mount("/catalog", handlers.Catalog.Routes())
			console.Mount("/drafts", handlers.Drafts.Routes())
			console.Mount("/library", handlers.Library.Routes())
			console.Mount("/assist", handlers.Assist.Routes())
			console.Mount("/history", handlers.History.Routes())
		})
	})

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server is shut down or fails to bind.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
