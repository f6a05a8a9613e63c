// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxIdentLength is the longest variable name SAS accepts.
const MaxIdentLength = 32

// TruncateIdent returns the first MaxIdentLength runes of s.
func TruncateIdent(s string) string {
	if len(s) <= MaxIdentLength {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxIdentLength {
			return s[:i]
		}
		n++
	}
	return s
}

// NormalizeIdent reduces s to plain ASCII by decomposing it (Unicode NFKD) and
// dropping every rune outside the 7-bit ASCII range, so that "café" becomes
// "cafe". It never fails; a name with no ASCII content normalizes to "".
func NormalizeIdent(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isNotASCII)))
	// Neither transformer fails; invalid UTF-8 decodes to U+FFFD, which is
	// removed.
	out, _, _ := transform.String(t, s)
	return out
}

// SanitizeIdent truncates and normalizes a split variable name into the
// identifier written to the scoring code. The name is truncated before it is
// normalized; because decomposition can expand compatibility characters (for
// example the ligature "ﬁ" becomes "fi"), the result is truncated again.
func SanitizeIdent(s string) string {
	out := NormalizeIdent(TruncateIdent(s))
	if len(out) > MaxIdentLength {
		out = out[:MaxIdentLength]
	}
	return out
}

func isNotASCII(r rune) bool {
	return r > unicode.MaxASCII
}
