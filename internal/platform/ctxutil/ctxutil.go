// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the values the middleware chain binds to a
// request: correlation ID, logger, console token claims and editor session.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shloka-console/internal/platform/sec"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// contextKey is unexported so no other package can read or overwrite these
// values with a colliding key.
type contextKey int

const (
	requestIDKey contextKey = iota
	loggerKey
	claimsKey
	sessionKey
)

func lookup[T any](ctx context.Context, key contextKey) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// # Request Tracing

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the correlation value, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, requestIDKey)
	return id
}

// # Structured Logging

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, loggerKey); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Editor Identity

// WithAuthUser attaches the verified console token claims.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetAuthUser returns the console token claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := lookup[*sec.AuthClaims](ctx, claimsKey)
	return claims
}

// WithSession attaches the resolved editor session.
func WithSession(ctx context.Context, current *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, current)
}

// GetSession returns the editor session, or nil when none is bound.
func GetSession(ctx context.Context) *session.Session {
	current, _ := lookup[*session.Session](ctx, sessionKey)
	return current
}
