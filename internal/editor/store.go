// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package editor

import (
	"context"
	"errors"
	"time"
)

// ErrStaleDraft is returned by [DraftRepository.Replace] when the stored draft
// has moved past the version the caller read.
var ErrStaleDraft = errors.New("editor: draft changed since it was read")

// DraftRepository persists drafts, scoped to the owning session.
type DraftRepository interface {

	// Save writes the draft under its session unconditionally, refreshing the TTL.
	Save(context context.Context, draft Draft, ttl time.Duration) error

	// Replace writes draft only if the stored copy is still at version read.
	// It returns [ErrStaleDraft] otherwise.
	Replace(context context.Context, draft Draft, read int64, ttl time.Duration) error

	/*
		Find loads a draft owned by the session.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - draftID: string

		Returns:
		  - *Draft: Stored draft
		  - error: apperr.NotFound when absent, expired, or owned by another session
	*/
	Find(context context.Context, sessionID, draftID string) (*Draft, error)

	// Delete removes a draft. Deleting an absent draft is not an error.
	Delete(context context.Context, sessionID, draftID string) error

	// Claim marks a draft as being submitted. It reports false when another
	// submission already holds the claim. The claim lapses after ttl.
	Claim(context context.Context, sessionID, draftID string, ttl time.Duration) (bool, error)

	// Release drops a claim taken by [DraftRepository.Claim].
	Release(context context.Context, sessionID, draftID string) error
}
