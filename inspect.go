// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"slices"
)

// Stats summarizes the shape of a tree.
type Stats struct {
	// InternalNodes and Leaves count distinct nodes; a missing-value child
	// shared with the left or right child is counted once.
	InternalNodes int
	Leaves        int
	// MaxDepth is the depth of the deepest leaf; a single leaf has depth 0.
	MaxDepth int
	// LeafDepths holds the depth of every leaf in pre-order.
	LeafDepths []int
	// MissingLeft, MissingRight and MissingBranches count the split nodes by
	// how they handle a missing split variable.
	MissingLeft     int
	MissingRight    int
	MissingBranches int
	// Variables are the distinct split variable names, sorted.
	Variables []string
}

// Inspect walks t and returns its Stats. The walk uses an explicit stack, so
// it is not limited by the depth of the tree. Contract violations raised by
// the tree are returned as errors.
func Inspect[N comparable](t Tree[N]) (stats Stats, err error) {
	defer recoverContractViolation(&err)

	type item struct {
		n     N
		depth int
	}
	vars := make(map[string]struct{})
	root := t.Root()
	if ix, ok := t.(Indexer[N]); ok {
		ix.Reindex(root)
	}
	stack := []item{{n: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !t.IsInternal(it.n) {
			stats.Leaves++
			stats.LeafDepths = append(stats.LeafDepths, it.depth)
			stats.MaxDepth = max(stats.MaxDepth, it.depth)
			continue
		}
		stats.InternalNodes++
		vars[t.SplitVariable(it.n)] = struct{}{}
		left, right := t.Left(it.n), t.Right(it.n)
		// Push in reverse emission order: missing branch, then left, then
		// right are popped.
		stack = append(stack, item{right, it.depth + 1}, item{left, it.depth + 1})
		switch {
		case t.RoutesMissingLeft(it.n):
			stats.MissingLeft++
		case t.RoutesMissingRight(it.n):
			stats.MissingRight++
		default:
			stats.MissingBranches++
			if m, ok := t.Missing(it.n); ok && m != left && m != right {
				stack = append(stack, item{m, it.depth + 1})
			}
		}
	}
	for v := range vars {
		stats.Variables = append(stats.Variables, v)
	}
	slices.Sort(stats.Variables)
	return stats, nil
}
