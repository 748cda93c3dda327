// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package editor

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
)

// RedisDraftRepository implements [DraftRepository] using Redis.
type RedisDraftRepository struct {
	client *redis.Client
}

// NewDraftRepository creates a new Redis-backed [DraftRepository].
func NewDraftRepository(client *redis.Client) *RedisDraftRepository {
	return &RedisDraftRepository{client: client}
}

// draftKey namespaces drafts by session so one editor cannot read another's.
func draftKey(sessionID, draftID string) string {
	return redisstore.Key(constants.RedisPrefixDraft, sessionID, draftID)
}

// claimKey marks a draft whose submission is in flight.
func claimKey(sessionID, draftID string) string {
	return redisstore.Key(constants.RedisPrefixDraft, sessionID, draftID, "submitting")
}

// storedVersion is the part of a stored draft Replace compares.
type storedVersion struct {
	Version int64 `json:"version"`
}

/*
Save stores the draft as JSON.

Parameters:
  - context: context.Context
  - draft: Draft
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisDraftRepository) Save(context context.Context, draft Draft, ttl time.Duration) error {

	// Serialize the whole arena
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("redis_draft_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, draftKey(draft.SessionID, draft.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_draft_set_failed: %w", err)
	}

	return nil
}

/*
Replace stores the draft if nobody wrote it since version read.

Description: The key is watched while the stored version is compared, so a
write landing between the check and the SET aborts the transaction.

Returns:
  - error: apperr.NotFound when the draft expired, ErrStaleDraft on a lost race
*/
func (repository *RedisDraftRepository) Replace(context context.Context, draft Draft, read int64, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("redis_draft_encode_failed: %w", err)
	}

	key := draftKey(draft.SessionID, draft.ID)

	err = repository.client.Watch(context, func(tx *redis.Tx) error {
		current, err := tx.Get(context, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return apperr.NotFound("Draft")
		}
		if err != nil {
			return fmt.Errorf("redis_draft_get_failed: %w", err)
		}

		var stored storedVersion
		if err := json.Unmarshal(current, &stored); err != nil {
			return fmt.Errorf("redis_draft_decode_failed: %w", err)
		}
		if stored.Version != read {
			return ErrStaleDraft
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, key, payload, ttl)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleDraft
	}
	return err
}

/*
Find loads a draft.

Description: Returns apperr.NotFound if the draft is absent or expired.
*/
func (repository *RedisDraftRepository) Find(context context.Context, sessionID, draftID string) (*Draft, error) {
	payload, err := repository.client.Get(context, draftKey(sessionID, draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Draft")
		}
		return nil, fmt.Errorf("redis_draft_get_failed: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("redis_draft_decode_failed: %w", err)
	}

	return &draft, nil
}

// Delete removes the draft from Redis.
func (repository *RedisDraftRepository) Delete(context context.Context, sessionID, draftID string) error {
	if err := repository.client.Del(context, draftKey(sessionID, draftID)).Err(); err != nil {
		return fmt.Errorf("redis_draft_delete_failed: %w", err)
	}
	return nil
}

// Claim takes the submission marker with SET NX.
func (repository *RedisDraftRepository) Claim(context context.Context, sessionID, draftID string, ttl time.Duration) (bool, error) {
	claimed, err := repository.client.SetNX(context, claimKey(sessionID, draftID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_draft_claim_failed: %w", err)
	}
	return claimed, nil
}

// Release deletes the submission marker.
func (repository *RedisDraftRepository) Release(context context.Context, sessionID, draftID string) error {
	if err := repository.client.Del(context, claimKey(sessionID, draftID)).Err(); err != nil {
		return fmt.Errorf("redis_draft_release_failed: %w", err)
	}
	return nil
}
