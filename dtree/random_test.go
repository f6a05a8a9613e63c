// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package dtree

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/metamorphic"
	"github.com/cockroachdb/treesas"
	"github.com/stretchr/testify/require"
)

// TestRandomTrees emits random trees and checks that the output agrees with
// the tree's shape and survives a round trip through the debug format.
func TestRandomTrees(t *testing.T) {
	seed := time.Now().UnixNano()
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewSource(seed))

	nextMode := metamorphic.Weighted[MissingMode]{
		{Item: MissingBranch, Weight: 2},
		{Item: MissingLeft, Weight: 3},
		{Item: MissingRight, Weight: 3},
	}.RandomDeck(rng)
	nextOp := metamorphic.Weighted[treesas.Operator]{
		{Item: treesas.OpLT, Weight: 3},
		{Item: treesas.OpLE, Weight: 1},
		{Item: treesas.OpGT, Weight: 1},
		{Item: treesas.OpGE, Weight: 1},
		{Item: treesas.OpEQ, Weight: 1},
	}.RandomDeck(rng)

	var build func(depth int) *Node
	build = func(depth int) *Node {
		if depth == 0 || rng.Intn(4) == 0 {
			return Leaf(float64(rng.Intn(1000)) / 8)
		}
		n := Split(fmt.Sprintf("f%d", rng.Intn(5)), nextOp(), float64(rng.Intn(100)),
			build(depth-1), build(depth-1))
		switch mode := nextMode(); mode {
		case MissingBranch:
			switch rng.Intn(3) {
			case 0:
				n.WithMissingNode(n.Left)
			case 1:
				n.WithMissingNode(n.Right)
			default:
				n.WithMissingNode(build(depth - 1))
			}
		default:
			n.WithMissing(mode)
		}
		return n
	}

	for i := 0; i < 100; i++ {
		tree := New(build(6))
		parsed, err := Parse(tree.String())
		require.NoError(t, err)
		require.Equal(t, tree.String(), parsed.String())

		var a, b bytes.Buffer
		info, err := tree.Emit(&a, nil)
		require.NoError(t, err)
		_, err = parsed.Emit(&b, nil)
		require.NoError(t, err)
		require.Equal(t, a.String(), b.String())

		stats, err := treesas.Inspect[*Node](tree)
		require.NoError(t, err)
		require.Equal(t, stats.MaxDepth, info.MaxDepth)
		require.GreaterOrEqual(t, info.Leaves, stats.Leaves)
		require.GreaterOrEqual(t, info.MissingBranches, stats.MissingBranches)
		require.Equal(t, info.Leaves, strings.Count(a.String(), "treeValue0 = "))

		for _, line := range strings.Split(strings.TrimSuffix(a.String(), "\n"), "\n") {
			indent := len(line) - len(strings.TrimLeft(line, " "))
			require.Zero(t, indent%treesas.DefaultIndentWidth, "%q", line)
			require.LessOrEqual(t, indent, treesas.DefaultIndentWidth*info.MaxDepth, "%q", line)
		}
	}
}
