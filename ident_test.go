// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

func TestNormalizeIdent(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"income", "income"},
		{"café_amount", "cafe_amount"},
		{"Ångström", "Angstrom"},
		{"ﬁle_size", "file_size"},
		{"x²", "x2"},
		{"日本", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, NormalizeIdent(tc.input), "%q", tc.input)
	}
}

func TestNormalizeIdentASCII(t *testing.T) {
	for _, s := range []string{"a\xffb", "\xc3", "Ω≈ç√∫", "🌲tree", "naïvé"} {
		out := NormalizeIdent(s)
		for i := 0; i < len(out); i++ {
			require.LessOrEqual(t, out[i], byte(unicode.MaxASCII), "%q -> %q", s, out)
		}
		require.Equal(t, out, NormalizeIdent(s))
	}
}

func TestTruncateIdent(t *testing.T) {
	require.Equal(t, "short", TruncateIdent("short"))
	require.Equal(t, strings.Repeat("a", 32), TruncateIdent(strings.Repeat("a", 40)))
	require.Equal(t, strings.Repeat("é", 32), TruncateIdent(strings.Repeat("é", 40)))
	require.Equal(t, strings.Repeat("é", 20), TruncateIdent(strings.Repeat("é", 20)))
}

func TestSanitizeIdent(t *testing.T) {
	a31 := strings.Repeat("a", 31)

	// Names are truncated before they are normalized: the dropped rune still
	// counts towards the limit.
	require.Equal(t, a31, SanitizeIdent("日"+a31+"bbbb"))
	// Expansion by normalization is cut at the limit.
	require.Equal(t, a31+"f", SanitizeIdent(a31+"ﬁx"))
	require.Equal(t, "cafe_amount", SanitizeIdent("café_amount"))
	require.Equal(t, "Unicode_feature_name_that_is_far",
		SanitizeIdent("Unicode_feature_name_that_is_far_too_long"))
}
