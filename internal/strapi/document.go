// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package strapi

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// # Collection Documents

// Book is a scripture book option.
type Book struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Title      string `json:"title"`
}

// Label returns the dropdown text.
func (b Book) Label() string {
	return b.Title
}

// Author is a commentator option.
type Author struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Name       string `json:"name"`
}

// Label returns the dropdown text.
func (a Author) Label() string {
	return a.Name
}

// Chapter is a chapter option.
type Chapter struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Title      string `json:"title"`
	Number     int    `json:"number"`
}

// Label returns the title, or "Chapter N" when the chapter is untitled.
func (c Chapter) Label() string {
	if c.Title != "" {
		return c.Title
	}
	return "Chapter " + strconv.Itoa(c.Number)
}

// listEnvelope is the {"data":[...]} collection wrapper.
type listEnvelope struct {
	Data []json.RawMessage `json:"data"`
}

// itemEnvelope is the {"data":{...}} single-document wrapper.
type itemEnvelope struct {
	Data json.RawMessage `json:"data"`
}

/*
flatten lifts v4 "attributes" fields to the top level of a document.

Description: id and documentId stay at the top level; attribute fields are
merged alongside them. A v5 document (no attributes) is returned unchanged.
*/
func flatten(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	attributes, ok := fields["attributes"]
	if !ok {
		return fields, nil
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(attributes, &nested); err != nil {
		return nil, err
	}

	delete(fields, "attributes")
	for key, value := range nested {
		if _, exists := fields[key]; !exists {
			fields[key] = value
		}
	}

	return fields, nil
}

// decodeDocument flattens raw and decodes it into T.
// Field matching is case-insensitive, so "Title" and "title" both populate Title.
func decodeDocument[T any](raw json.RawMessage) (T, error) {
	var out T

	fields, err := flatten(raw)
	if err != nil {
		return out, err
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(merged, &out); err != nil {
		return out, err
	}

	return out, nil
}

// decodeList decodes every document of a collection response.
func decodeList[T any](envelope listEnvelope) ([]T, error) {
	items := make([]T, 0, len(envelope.Data))
	for index, raw := range envelope.Data {
		item, err := decodeDocument[T](raw)
		if err != nil {
			return nil, fmt.Errorf("strapi_decode_item_%d: %w", index, err)
		}
		items = append(items, item)
	}
	return items, nil
}
