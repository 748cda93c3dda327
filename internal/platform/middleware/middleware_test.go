// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/platform/middleware"
	"github.com/taibuivan/shloka-console/internal/platform/sec"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// ok is the innermost handler; it echoes what the chain bound.
var ok = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	if current := ctxutil.GetSession(request.Context()); current != nil {
		_, _ = io.WriteString(writer, current.Email)
		return
	}
	_, _ = io.WriteString(writer, "ok")
})

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Code
}

/*
TestRequestID keeps printable client IDs and replaces the rest.
*/
func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"client id kept", "edge-7f3a", true},
		{"missing", "", false},
		{"contains spaces", "a b", false},
		{"too long", strings.Repeat("x", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				seen = ctxutil.GetRequestID(request.Context())
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				request.Header.Set("X-Request-ID", tt.incoming)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.Len(t, seen, 36)
			}
		})
	}
}

/*
TestRateLimit rejects past the burst with Retry-After, per client IP.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, middleware.Limits{RPS: 0.5, Burst: 2})(ok)

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodPost, "/login", nil)
		request.Header.Set("X-Real-IP", ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	limited := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, apperr.CodeRateLimited, errorCode(t, limited))
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}

/*
TestPanicRecovery answers 500 with the standard envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(discard)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, apperr.CodeInternal, errorCode(t, recorder))
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

/*
TestCORS allows configured origins and short-circuits pre-flight.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		cfg         corsConfig
		method      string
		origin      string
		wantAllowed bool
		wantStatus  int
	}{
		{"configured origin", corsConfig{origins: []string{"https://console.example"}}, http.MethodGet, "https://CONSOLE.example", true, http.StatusOK},
		{"unknown origin", corsConfig{origins: []string{"https://console.example"}}, http.MethodGet, "https://evil.example", false, http.StatusOK},
		{"development allows all", corsConfig{development: true}, http.MethodGet, "http://localhost:5173", true, http.StatusOK},
		{"pre-flight", corsConfig{development: true}, http.MethodOptions, "http://localhost:5173", true, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/api/v1/drafts", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(ok).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.9"}, "10.0.0.1:5000", "203.0.113.9"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.2"}, "10.0.0.1:5000", "198.51.100.4"},
		{"socket", nil, "192.0.2.1:443", "192.0.2.1"},
		{"socket without port", nil, "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.remote
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}
			assert.Equal(t, tt.want, middleware.RealIP(request))
		})
	}
}

// fakeVerifier accepts one token.
type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "live":
		return &sec.AuthClaims{SessionID: "s-live"}, nil
	case "stale":
		return &sec.AuthClaims{SessionID: "s-stale"}, nil
	case "gone":
		return &sec.AuthClaims{SessionID: "s-gone"}, nil
	case "broken":
		return &sec.AuthClaims{SessionID: "s-broken"}, nil
	}
	return nil, errors.New("invalid token")
}

// fakeResolver serves fixed sessions.
type fakeResolver struct{}

func (fakeResolver) FindByID(_ context.Context, id string) (*session.Session, error) {
	switch id {
	case "s-live":
		return &session.Session{ID: id, Email: "editor@example.org", ExpiresAt: time.Now().Add(time.Hour)}, nil
	case "s-stale":
		return &session.Session{ID: id, ExpiresAt: time.Now().Add(-time.Minute)}, nil
	case "s-broken":
		return nil, errors.New("redis down")
	}
	return nil, apperr.NotFound("Session")
}

/*
TestAuthenticate_RequireSession binds the session or answers 401.
*/
func TestAuthenticate_RequireSession(t *testing.T) {
	chain := middleware.Authenticate(fakeVerifier{})(middleware.RequireSession(fakeResolver{})(ok))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"live session", "Bearer live", http.StatusOK, "editor@example.org"},
		{"lowercase scheme", "bearer live", http.StatusOK, "editor@example.org"},
		{"anonymous", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic live", http.StatusUnauthorized, ""},
		{"bad token", "Bearer forged", http.StatusUnauthorized, ""},
		{"expired session", "Bearer stale", http.StatusUnauthorized, ""},
		{"logged out", "Bearer gone", http.StatusUnauthorized, ""},
		{"store failure", "Bearer broken", http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/drafts", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

/*
TestStructuredLogger injects a request logger.
*/
func TestStructuredLogger(t *testing.T) {
	var buffer strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctxutil.GetLogger(request.Context()).Info("inside")
		writer.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe", nil))

	output := buffer.String()
	assert.Contains(t, output, `"msg":"inside"`)
	assert.Contains(t, output, `"path":"/probe"`)
	assert.Contains(t, output, `"msg":"http_request_finished"`)
	assert.Contains(t, output, `"status":418`)
}
