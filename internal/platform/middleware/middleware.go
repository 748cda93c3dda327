// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the HTTP chain every console request passes through.

Order, outermost first:

  - RequestID: correlation ID for logs and responses.
  - StructuredLogger: per-request slog logger and one summary line.
  - CORS: browser origins, ahead of anything that can reject.
  - PanicRecovery: converts panics into a 500 envelope.
  - RateLimit and BodyLimit: per-IP budgets and request body caps.
  - Authenticate, RequireSession: console token, then the editor session.

Errors are written with [respond.Error] so clients see the same envelope
whether a handler or a middleware rejected the request.
*/
package middleware

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/platform/respond"
	"github.com/taibuivan/shloka-console/pkg/uuid"
)

// # Request Tracing

// maxRequestIDLength bounds client-supplied correlation IDs.
const maxRequestIDLength = 64

// RequestID attaches a correlation ID to every request. A client-supplied
// X-Request-ID is kept when it is short and printable; otherwise a UUIDv7 is
// issued.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !acceptableRequestID(requestID) {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		if r <= ' ' || r > '~' {
			return false
		}
	}
	return true
}

// # Activity Logging

// responseRecorder captures the status and size of a response.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (recorder *responseRecorder) WriteHeader(code int) {
	if recorder.status == 0 {
		recorder.status = code
	}
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *responseRecorder) Write(body []byte) (int, error) {
	if recorder.status == 0 {
		recorder.status = http.StatusOK
	}
	n, err := recorder.ResponseWriter.Write(body)
	recorder.bytes += n
	return n, err
}

// StructuredLogger injects a request-scoped logger and writes one
// "http_request_finished" line per request, at warn for 4xx and error for 5xx.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &responseRecorder{ResponseWriter: writer}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			status := recorder.status
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			requestLogger.Log(ctx, level, "http_request_finished",
				slog.Int("status", status),
				slog.Int("bytes", recorder.bytes),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			)
		})
	}
}

// # Rate Limiting

// Limits sizes the token bucket kept for each client IP.
type Limits struct {
	RPS   float64
	Burst int
}

// DefaultLimits applies to every API request.
var DefaultLimits = Limits{RPS: constants.DefaultRateLimitRPS, Burst: constants.DefaultRateLimitBurst}

// LoginLimits applies to credential submissions.
var LoginLimits = Limits{RPS: constants.LoginRateLimitRPS, Burst: constants.LoginRateLimitBurst}

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry holds the buckets of one [RateLimit] instance.
type limiterRegistry struct {
	mu      sync.Mutex
	limits  Limits
	clients map[string]*rateLimitClient
}

// wait takes a token from the client's bucket, creating it on first sight.
// It returns zero when the request may proceed, or how long until a token
// is available.
func (registry *limiterRegistry) wait(clientIP string, now time.Time) time.Duration {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	client, found := registry.clients[clientIP]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(rate.Limit(registry.limits.RPS), registry.limits.Burst)}
		registry.clients[clientIP] = client
	}
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return time.Minute
	}

	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
	}
	return delay
}

// sweep forgets clients idle for longer than [constants.RateLimitClientTTL].
func (registry *limiterRegistry) sweep(now time.Time) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for ip, client := range registry.clients {
		if now.Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(registry.clients, ip)
		}
	}
}

// RateLimit limits requests per IP using a token bucket. Rejections are 429
// with a Retry-After header.
//
// Each call owns its own buckets, so a strict limiter on one route does not
// consume the budget of the global one. The idle-client sweeper stops when
// context is cancelled.
func RateLimit(context context.Context, limits Limits) func(http.Handler) http.Handler {
	registry := &limiterRegistry{limits: limits, clients: make(map[string]*rateLimitClient)}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				registry.sweep(now)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if delay := registry.wait(RealIP(request), time.Now()); delay > 0 {
				seconds := int(math.Ceil(delay.Seconds()))
				writer.Header().Set("Retry-After", strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Reliability & Safety

// PanicRecovery recovers from panics, logs the stack, and returns a 500.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				requestLogger := ctxutil.GetLogger(request.Context())
				if requestLogger == slog.Default() {
					requestLogger = logger
				}
				requestLogger.ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stack)),
				)

				respond.Error(writer, request, apperr.Internal(nil))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// DefaultBodyLimit fits a verse with every commentary, translation and Tika
// filled in.
const DefaultBodyLimit = 1 << 20

// BodyLimit caps the request body at max bytes; reads past it fail with
// [http.MaxBytesError].
func BodyLimit(max int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Body != nil {
				request.Body = http.MaxBytesReader(writer, request.Body, max)
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig defines the behavior needed by the CORS middleware.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

// CORS allows configured origins (and any origin in development) and answers
// pre-flight requests with 204.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if originAllowed(cfg, origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
				header.Add("Vary", constants.HeaderOrigin)
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func originAllowed(cfg AppConfig, origin string) bool {
	if cfg.IsDevelopment() {
		return true
	}
	for _, allowed := range cfg.AllowedOrigins() {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	return false
}

// # Middleware Helpers

// RealIP extracts the client IP, preferring X-Real-IP, then the first
// X-Forwarded-For hop, then the connection address.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
