// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses path and query values where a malformed value and a
missing one mean the same thing to the caller.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD parses str as an int, returning def when it is blank or malformed.
func ToIntD(str string, def int) int {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}
