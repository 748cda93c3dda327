// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto [Config] with caarlos0/env.

The server loads it once in main and hands values to constructors; nothing
reads the environment after startup. The CLI does not use it: shlokactl takes
its few settings as flags with environment fallbacks.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration of the console API server.
type Config struct {
	// Server
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// PostgreSQL submission journal
	DatabaseURL      string `env:"DATABASE_URL,required"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"8"`

	// MigrationPath overrides the embedded migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Redis sessions and drafts
	RedisURL      string `env:"REDIS_URL,required"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// RS256 key pair for console tokens
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Content API. Editors cannot choose another host at login.
	StrapiURL       string        `env:"STRAPI_URL"       envDefault:"http://localhost:1337"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	// Lifetimes of server-side state
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	DraftTTL   time.Duration `env:"DRAFT_TTL"   envDefault:"72h"`

	// AI assist: "upstream" proxies to the content API plugin, "gemini" calls Gemini directly.
	AssistProvider string `env:"ASSIST_PROVIDER" envDefault:"upstream"`
	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	GeminiModel    string `env:"GEMINI_MODEL"    envDefault:"gemini-2.5-flash"`

	// Tracing (opt-in)
	OtelEndpoint string `env:"OTEL_ENDPOINT"`
	OtelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// Load reads the environment; it fails when a required variable is unset or
// the assist provider lacks its credentials.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	switch cfg.AssistProvider {
	case "upstream":
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("config: GEMINI_API_KEY is required when ASSIST_PROVIDER=gemini")
		}
	default:
		return nil, fmt.Errorf("config: unknown ASSIST_PROVIDER %q", cfg.AssistProvider)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
