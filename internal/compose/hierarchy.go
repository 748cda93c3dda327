// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package compose

import (
	"strconv"
	"strings"
)

// # Hierarchy Descriptor

const (
	// MinHierarchyDepth and MaxHierarchyDepth bound the user-adjustable depth.
	MinHierarchyDepth = 2
	MaxHierarchyDepth = 4
)

// defaultLevelNames are used, right-aligned, when levels are added.
var defaultLevelNames = []string{"Part", "Section", "Chapter", "Verse"}

// Hierarchy pairs ordered level names with ordered level values.
// Names and Values always have equal length.
type Hierarchy struct {
	Names  []string `json:"names"`
	Values []string `json:"values"`
}

// NewHierarchy returns a descriptor of the given depth with every value "1".
func NewHierarchy(depth int) Hierarchy {
	return Hierarchy{}.WithDepth(depth)
}

// WithDepth returns a copy resized to depth (clamped to 2..4).
//
// Levels are added or dropped at the front so the innermost (verse) level is
// always preserved. New levels take their default name and the value "1".
func (h Hierarchy) WithDepth(depth int) Hierarchy {
	depth = min(max(depth, MinHierarchyDepth), MaxHierarchyDepth)

	names := make([]string, depth)
	values := make([]string, depth)

	current := min(len(h.Names), len(h.Values))
	for i := range depth {
		source := current - depth + i
		if source >= 0 {
			names[i] = h.Names[source]
			values[i] = h.Values[source]
			continue
		}
		names[i] = defaultLevelNames[len(defaultLevelNames)-depth+i]
		values[i] = "1"
	}

	return Hierarchy{Names: names, Values: values}
}

// Depth returns the number of levels.
func (h Hierarchy) Depth() int {
	return len(h.Values)
}

// Label joins the values with dots, e.g. "2.47".
func (h Hierarchy) Label() string {
	return strings.Join(h.Values, ".")
}

// Advance returns a copy with the last value incremented.
func (h Hierarchy) Advance() Hierarchy {
	return Hierarchy{
		Names:  append([]string(nil), h.Names...),
		Values: IncrementHierarchyValue(h.Values),
	}
}

/*
IncrementHierarchyValue advances sequential numbering after a save.

Description: The last value is incremented when it is an integer. A dotted
compound value ("3.4") has only its final segment incremented ("3.5").
Non-numeric trailing values are returned unchanged. The input is never
modified.

Parameters:
  - values: []string

Returns:
  - []string: A new slice
*/
func IncrementHierarchyValue(values []string) []string {
	next := append([]string(nil), values...)
	if len(next) == 0 {
		return next
	}

	last := len(next) - 1
	next[last] = incrementSegment(next[last])

	return next
}

func incrementSegment(value string) string {
	trimmed := strings.TrimSpace(value)

	if n, err := strconv.Atoi(trimmed); err == nil {
		return strconv.Itoa(n + 1)
	}

	dot := strings.LastIndex(trimmed, ".")
	if dot < 0 {
		return value
	}

	n, err := strconv.Atoi(trimmed[dot+1:])
	if err != nil {
		return value
	}

	return trimmed[:dot+1] + strconv.Itoa(n+1)
}
