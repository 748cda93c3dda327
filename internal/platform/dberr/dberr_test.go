// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/dberr"
)

/*
TestWrap classifies pgx errors.
*/
func TestWrap(t *testing.T) {
	broken := errors.New("conn closed")

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperr.CodeConflict},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, apperr.CodeInternal},
		{"connection", broken, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "list_submissions"), tt.code))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "list_submissions"))
	assert.ErrorIs(t, dberr.Wrap(broken, "list_submissions"), broken)
	assert.ErrorContains(t, apperr.As(dberr.Wrap(broken, "list_submissions")).Cause, "list_submissions_failed")
}
