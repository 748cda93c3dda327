// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shloka-console/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/console")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
}

/*
TestLoad_Defaults fills every optional setting.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://localhost:1337", cfg.StrapiURL)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 72*time.Hour, cfg.DraftTTL)
	assert.Equal(t, int32(8), cfg.DatabaseMaxConns)
	assert.Equal(t, 10, cfg.RedisPoolSize)
	assert.Empty(t, cfg.MigrationPath)
	assert.Equal(t, "upstream", cfg.AssistProvider)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Nil(t, cfg.AllowedOrigins())
}

/*
TestLoad_Errors reports missing or inconsistent settings.
*/
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database", map[string]string{"DATABASE_URL": ""}},
		{"bad duration", map[string]string{"DRAFT_TTL": "tomorrow"}},
		{"gemini without key", map[string]string{"ASSIST_PROVIDER": "gemini", "GEMINI_API_KEY": ""}},
		{"unknown assist provider", map[string]string{"ASSIST_PROVIDER": "openai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
				if value == "" {
					require.NoError(t, os.Unsetenv(key))
				}
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestConfig_AllowedOrigins trims and drops blanks.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " https://a.example ,, https://b.example "}

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
