// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// # Metadata Collections

// metadataQuery requests the dropdown page size.
var metadataQuery = url.Values{"pagination[limit]": {strconv.Itoa(constants.MetadataPageLimit)}}.Encode()

// ListBooks returns up to one page of books.
func (client *Client) ListBooks(context context.Context, current *session.Session) ([]Book, error) {
	return listCollection[Book](context, client, current, constants.StrapiBooksPath)
}

// ListAuthors returns up to one page of authors.
func (client *Client) ListAuthors(context context.Context, current *session.Session) ([]Author, error) {
	return listCollection[Author](context, client, current, constants.StrapiAuthorsPath)
}

// ListChapters returns up to one page of chapters.
func (client *Client) ListChapters(context context.Context, current *session.Session) ([]Chapter, error) {
	return listCollection[Chapter](context, client, current, constants.StrapiChaptersPath)
}

func listCollection[T any](context context.Context, client *Client, current *session.Session, path string) ([]T, error) {
	request := forSession(current, http.MethodGet, path)
	request.query = metadataQuery

	var envelope listEnvelope
	if err := client.do(context, request, &envelope); err != nil {
		return nil, err
	}

	return decodeList[T](envelope)
}

// # Verse Submission

// Created is the content API's acknowledgement of a new document.
type Created struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
}

/*
CreateShloka submits a composed verse document.

Parameters:
  - context: context.Context
  - current: *session.Session
  - submission: compose.Submission

Returns:
  - *Created: The new document's identifiers
  - error: [*Error] with the upstream message when rejected
*/
func (client *Client) CreateShloka(context context.Context, current *session.Session, submission compose.Submission) (*Created, error) {
	request := forSession(current, http.MethodPost, constants.StrapiShlokasPath)
	request.body = submission

	var envelope itemEnvelope
	if err := client.do(context, request, &envelope); err != nil {
		return nil, err
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return &Created{}, nil
	}

	created, err := decodeDocument[Created](envelope.Data)
	if err != nil {
		return nil, fmt.Errorf("strapi_decode_created: %w", err)
	}

	return &created, nil
}

// # Nested Entries

var entryQuery = url.Values{"populate": {"book"}}.Encode()

// ListEntries returns every nested entry with its book populated.
func (client *Client) ListEntries(context context.Context, current *session.Session) ([]compose.Entry, error) {
	request := forSession(current, http.MethodGet, constants.StrapiEntriesPath)
	request.query = entryQuery

	var envelope listEnvelope
	if err := client.do(context, request, &envelope); err != nil {
		return nil, err
	}

	entries := make([]compose.Entry, 0, len(envelope.Data))
	for index, raw := range envelope.Data {
		entry, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("strapi_decode_entry_%d: %w", index, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetEntry returns one nested entry by document ID (or numeric ID).
func (client *Client) GetEntry(context context.Context, current *session.Session, entryID string) (*compose.Entry, error) {
	request := forSession(current, http.MethodGet, constants.StrapiEntriesPath+"/"+url.PathEscape(entryID))
	request.query = entryQuery

	var envelope itemEnvelope
	if err := client.do(context, request, &envelope); err != nil {
		return nil, err
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, &Error{Status: http.StatusNotFound, Message: "Not Found"}
	}

	entry, err := decodeEntry(envelope.Data)
	if err != nil {
		return nil, fmt.Errorf("strapi_decode_entry: %w", err)
	}

	return &entry, nil
}

// entryDocument is the flattened nested entry.
type entryDocument struct {
	ID         int                   `json:"id"`
	DocumentID string                `json:"documentId"`
	Teekas     []compose.NestedVerse `json:"teekas"`
	Book       json.RawMessage       `json:"book"`
}

func decodeEntry(raw json.RawMessage) (compose.Entry, error) {
	document, err := decodeDocument[entryDocument](raw)
	if err != nil {
		return compose.Entry{}, err
	}

	return compose.Entry{
		ID:         document.ID,
		DocumentID: document.DocumentID,
		BookTitle:  bookTitle(document.Book),
		Verses:     document.Teekas,
	}, nil
}

// bookTitle reads a populated relation: {"data":{"attributes":{"title"}}} in
// v4 or {"title"} in v5. Anything else yields "".
func bookTitle(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var wrapped itemEnvelope
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 && string(wrapped.Data) != "null" {
		raw = wrapped.Data
	}

	book, err := decodeDocument[Book](raw)
	if err != nil {
		return ""
	}

	return book.Title
}
