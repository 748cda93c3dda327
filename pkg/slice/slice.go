// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the generic
helpers the composer and the editor views share.
*/
package slice

// Map maps a slice of type T to a slice of type U. A nil input stays nil so
// omitempty fields remain absent.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns the elements where predicate is true, or nil when none match.
func Filter[T any](input []T, predicate func(T) bool) []T {
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// Pick resolves keys against index in key order, skipping keys that are not
// present. The result is never nil so it encodes as a JSON array.
func Pick[K comparable, V any](keys []K, index map[K]V) []V {
	result := make([]V, 0, len(keys))
	for _, key := range keys {
		if value, ok := index[key]; ok {
			result = append(result, value)
		}
	}
	return result
}
