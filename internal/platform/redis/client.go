// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the managed client behind the console's expiring state.

Editor sessions and in-progress drafts live here with a TTL; nothing in Redis
is authoritative, so losing it only costs editors a fresh login and any
unsubmitted form content.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	probeTimeout = 2 * time.Second
)

// Options are the connection settings.
type Options struct {
	URL string

	// PoolSize caps open connections; zero keeps the go-redis default.
	PoolSize int
}

// NewClient parses the URL, applies the pool settings, and pings once.
func NewClient(context stdctx.Context, settings Options, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if settings.PoolSize > 0 {
		options.PoolSize = settings.PoolSize
		options.MinIdleConns = max(settings.PoolSize/5, 1)
	}

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	if err := Probe(client)(context); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Probe returns a readiness check that pings client with a short deadline.
func Probe(client *redis.Client) func(stdctx.Context) error {
	return func(context stdctx.Context) error {
		probeCtx, cancel := stdctx.WithTimeout(context, probeTimeout)
		defer cancel()

		if err := client.Ping(probeCtx).Err(); err != nil {
			return fmt.Errorf("redis: ping failed: %w", err)
		}
		return nil
	}
}

// Key joins a prefix such as "console:draft:" with colon-separated parts.
func Key(prefix string, parts ...string) string {
	return prefix + strings.Join(parts, ":")
}
