// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared by the console server and CLI:
HTTP timing, rate-limit budgets, content API paths and Redis key prefixes.

Values an operator may want to change live in [config.Config] instead.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "shloka-console"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Submissions wait on the content API, so this is wider than the read side.
	DefaultWriteTimeout = 45 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 40 * time.Second

	// ShutdownTimeout bounds the drain of in-flight submissions on SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// LoginRateLimitRPS and LoginRateLimitBurst throttle credential attempts
	// before they reach the identity service.
	LoginRateLimitRPS   = 0.2
	LoginRateLimitBurst = 5

	// RateLimitCleanupInterval is how often idle client limiters are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is the idle time after which a client limiter is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in console tokens.
	AuthIssuer = "shloka-console"
)

// # Upstream Content API

const (
	// StrapiLoginPath is the identity endpoint for local credentials.
	StrapiLoginPath = "/api/auth/local"

	// StrapiBooksPath, StrapiAuthorsPath and StrapiChaptersPath are the metadata collections.
	StrapiBooksPath    = "/api/books"
	StrapiAuthorsPath  = "/api/authors"
	StrapiChaptersPath = "/api/chapters"

	// StrapiShlokasPath is the collection verse submissions are created in.
	StrapiShlokasPath = "/api/shlokas"

	// StrapiEntriesPath is the nested entry collection (hierarchy + teekas).
	StrapiEntriesPath = "/api/entries"

	// StrapiTransliteratePath and StrapiTranslatePath are the AI assist endpoints.
	StrapiTransliteratePath = "/api/gemini/transliterate-text"
	StrapiTranslatePath     = "/api/gemini/translate-text"

	// MetadataPageLimit is the page size requested for dropdown collections.
	MetadataPageLimit = 100
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Health Report Fields

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Key Prefixes

const (
	RedisPrefixSession = "console:session:"
	RedisPrefixDraft   = "console:draft:"
)
