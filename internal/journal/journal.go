// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package journal keeps a local audit trail of verse submissions.

Each submission attempt made through the console, saved or failed, is
recorded with the exact payload sent to the content API. Editors can list
their own history.
*/
package journal

import (
	"encoding/json"
	"time"
)

// # Domain Types

// Status is the outcome of a submission attempt.
type Status string

const (
	StatusSaved  Status = "saved"
	StatusFailed Status = "failed"
)

// Record is one submission attempt.
type Record struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"-"`
	Email       string          `json:"email"`
	DraftID     string          `json:"draft_id"`
	Locale      string          `json:"locale"`
	ChapterID   int             `json:"chapter_id"`
	AuthorID    int             `json:"author_id"`
	VerseNumber int             `json:"verse_number"`
	Hierarchy   string          `json:"hierarchy"`
	Status      Status          `json:"status"`
	UpstreamID  string          `json:"upstream_id,omitempty"`
	Message     string          `json:"message,omitempty"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}
