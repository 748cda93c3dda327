// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shloka-console/pkg/convert"
)

/*
TestToIntD falls back to the default for blank or malformed input.
*/
func TestToIntD(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"3", 3},
		{" 0 ", 0},
		{"-2", -2},
		{"", -1},
		{"two", -1},
		{"1.5", -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convert.ToIntD(tt.input, -1), tt.input)
	}
}
