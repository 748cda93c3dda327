// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer builds the optional fields of upstream documents, where a
missing value must encode as JSON null rather than an empty string.
*/
package pointer

import "strings"

// To returns a pointer to the provided value (e.g. pointer.To[float32](0.2)).
func To[T any](v T) *T {
	return &v
}

// NonBlank returns a pointer to s, or nil when s is empty or only whitespace.
func NonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
