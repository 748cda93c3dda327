// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/constants"
	redisstore "github.com/taibuivan/shloka-console/internal/platform/redis"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Each session is one JSON value under "console:session:<id>" with the
// session TTL, so expiry needs no sweeper.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(id string) string {
	return redisstore.Key(constants.RedisPrefixSession, id)
}

/*
Create stores the session with its TTL.

Parameters:
  - context: context.Context
  - current: *session.Session
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Create(context context.Context, current *session.Session, ttl time.Duration) error {

	// Serialize the session record
	payload, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	// Set the session with TTL
	if err := repository.client.Set(context, sessionKey(current.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
FindByID loads a session.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *session.Session: Stored session
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByID(context context.Context, id string) (*session.Session, error) {

	// Get the session from Redis
	payload, err := repository.client.Get(context, sessionKey(id)).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var current session.Session
	if err := json.Unmarshal(payload, &current); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return &current, nil
}

/*
Delete removes the session from Redis.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, id string) error {

	// Delete the session from Redis
	if err := repository.client.Del(context, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
