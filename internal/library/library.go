// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library lists verses already stored in the content API.

The stored model is nested: each entry holds an ordered list of verses. The
listing flattens it into one row per verse so editors can search it, and the
edit lookup returns a single nested verse exactly as stored.
*/
package library

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
	"github.com/taibuivan/shloka-console/pkg/pagination"
)

// Source is the subset of the content API client the library reads.
type Source interface {
	ListEntries(context context.Context, current *session.Session) ([]compose.Entry, error)
	GetEntry(context context.Context, current *session.Session, entryID string) (*compose.Entry, error)
}

// Service implements the library listing.
type Service struct {
	source Source
}

// NewService constructs a new [Service].
func NewService(source Source) *Service {
	return &Service{source: source}
}

/*
List returns one page of flattened rows matching term.

Parameters:
  - context: context.Context
  - current: *session.Session
  - term: string (blank keeps every row)
  - page: pagination.Params

Returns:
  - []compose.Row: The requested page
  - int: Total matching rows
  - error: Upstream failures
*/
func (service *Service) List(context context.Context, current *session.Session, term string, page pagination.Params) ([]compose.Row, int, error) {
	entries, err := service.source.ListEntries(context, current)
	if err != nil {
		return nil, 0, strapi.AsAppError(err, "Entries")
	}

	rows := compose.FilterRows(compose.FlattenNestedEntries(entries), term)
	total := len(rows)

	start, end := page.Window(total)

	return rows[start:end], total, nil
}

/*
GetVerse returns the nested verse at index inside an entry, as stored.

Description: A missing entry or an index outside the entry's list is reported
as "Verse not found".
*/
func (service *Service) GetVerse(context context.Context, current *session.Session, entryID string, index int) (json.RawMessage, error) {
	entry, err := service.source.GetEntry(context, current, entryID)
	if err != nil {
		return nil, strapi.AsAppError(err, "Verse")
	}

	if index < 0 || index >= len(entry.Verses) {
		return nil, apperr.NotFound("Verse")
	}

	verse := entry.Verses[index]
	if len(verse.Raw) > 0 {
		return verse.Raw, nil
	}

	payload, err := json.Marshal(verse)
	if err != nil {
		return nil, fmt.Errorf("library_encode_verse_failed: %w", err)
	}
	return payload, nil
}
