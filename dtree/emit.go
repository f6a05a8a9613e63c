// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package dtree

import (
	"io"

	"github.com/cockroachdb/treesas"
)

// Emit writes the SAS scoring code for the tree to w.
func (t *Tree) Emit(w io.Writer, opts *treesas.Options) (treesas.EmitInfo, error) {
	return treesas.NewEmitter[*Node](t, opts).Emit(w)
}

// EmitTrees writes the scoring code of every tree to w; see
// treesas.EmitForest.
func EmitTrees(
	w io.Writer, trees []*Tree, opts *treesas.Options, concurrency int,
) ([]treesas.EmitInfo, error) {
	ts := make([]treesas.Tree[*Node], len(trees))
	for i := range trees {
		ts[i] = trees[i]
	}
	return treesas.EmitForest(w, ts, opts, concurrency)
}
