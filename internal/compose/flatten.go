// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package compose

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/taibuivan/shloka-console/pkg/slice"
)

// UntitledBook is the display title used when an entry has no book relation.
const UntitledBook = "Untitled Book"

// # Nested Entries (read model)

// Entry is a parent record holding an ordered list of nested verses.
type Entry struct {
	ID         int
	DocumentID string
	BookTitle  string
	Verses     []NestedVerse
}

// NestedVerse is one verse-like item inside an [Entry].
//
// Raw keeps the item exactly as the content API returned it so edit views can
// show fields this type does not model.
type NestedVerse struct {
	SourceText      string          `json:"sourceText"`
	Transliteration string          `json:"transliteration,omitempty"`
	HierarchyNames  []string        `json:"hierarchyNames"`
	HierarchyValues []string        `json:"hierarchyValues"`
	Raw             json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the modelled fields and retains the raw document.
func (v *NestedVerse) UnmarshalJSON(data []byte) error {
	type plain NestedVerse
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*v = NestedVerse(decoded)
	v.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Identifier returns the entry's document ID, falling back to its numeric ID.
func (e Entry) Identifier() string {
	if e.DocumentID != "" {
		return e.DocumentID
	}
	return strconv.Itoa(e.ID)
}

// Row is the flat listing projection of one nested verse.
type Row struct {
	EntryID   string      `json:"entry_id"`
	Index     int         `json:"index"`
	BookTitle string      `json:"book_title"`
	Hierarchy string      `json:"hierarchy"`
	Verse     NestedVerse `json:"verse"`
}

/*
FlattenNestedEntries produces one row per nested verse.

Description: Every row carries the parent's identifier, its own position in
the parent's list (0..N-1), and the parent's book title (defaulting to
[UntitledBook]). A parent with no nested verses contributes no rows.

Parameters:
  - entries: []Entry

Returns:
  - []Row: Rows in parent order, then nested order
*/
func FlattenNestedEntries(entries []Entry) []Row {
	rows := make([]Row, 0, len(entries))

	for _, entry := range entries {
		title := entry.BookTitle
		if strings.TrimSpace(title) == "" {
			title = UntitledBook
		}

		for index, verse := range entry.Verses {
			rows = append(rows, Row{
				EntryID:   entry.Identifier(),
				Index:     index,
				BookTitle: title,
				Hierarchy: strings.Join(verse.HierarchyValues, "."),
				Verse:     verse,
			})
		}
	}

	return rows
}

// FilterRows keeps rows whose source text, dotted hierarchy, or book title
// contains term, case-insensitively. A blank term keeps every row.
func FilterRows(rows []Row, term string) []Row {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return rows
	}

	matches := slice.Filter(rows, func(row Row) bool {
		return strings.Contains(strings.ToLower(row.Verse.SourceText), needle) ||
			strings.Contains(strings.ToLower(row.Hierarchy), needle) ||
			strings.Contains(strings.ToLower(row.BookTitle), needle)
	})

	if matches == nil {
		return []Row{}
	}
	return matches
}
