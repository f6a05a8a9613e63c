// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package invariants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssertf(t *testing.T) {
	require.NotPanics(t, func() { Assertf(true, "never") })
	if Enabled {
		require.Panics(t, func() { Assertf(false, "depth %d", 3) })
	} else {
		require.NotPanics(t, func() { Assertf(false, "depth %d", 3) })
	}
}
