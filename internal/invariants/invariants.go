// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants provides assertions that are only checked in builds
// with the "invariants" or "race" build tags.
package invariants

import "github.com/cockroachdb/errors"

// Assertf panics with an assertion failure if cond is false and invariant
// checking is enabled. It is a no-op otherwise.
func Assertf(cond bool, format string, args ...interface{}) {
	if Enabled && !cond {
		panic(errors.AssertionFailedf(format, args...))
	}
}
