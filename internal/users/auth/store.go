// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/shloka-console/internal/users/session"
)

// # Session Data Access

// SessionRepository persists editor sessions.
type SessionRepository interface {

	/*
		Create stores a session that expires after ttl.

		Parameters:
		  - context: context.Context
		  - current: *session.Session
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, current *session.Session, ttl time.Duration) error

	/*
		FindByID returns the live session with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *session.Session: Hydrated session
		  - error: apperr.NotFound when absent or expired
	*/
	FindByID(context context.Context, id string) (*session.Session, error)

	// Delete removes the session. Deleting an absent session is not an error.
	Delete(context context.Context, id string) error
}
