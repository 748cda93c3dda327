// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr maps pgx errors onto application errors so storage details
// never reach API clients.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taibuivan/shloka-console/internal/platform/apperr"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Record")

// Wrap classifies a database error. The action names the failed operation in
// the internal cause, e.g. "create_submission_failed: ...".
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("Record already exists")
	}

	return apperr.Internal(fmt.Errorf("%s_failed: %w", action, err))
}
