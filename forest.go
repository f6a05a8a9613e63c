// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// EmitForest emits every tree in trees to w, one after the other. Tree i is
// emitted with TreeID opts.TreeID+i so that each tree assigns its own output
// variable; combining the outputs is left to the caller.
//
// With concurrency > 1 up to that many trees are rendered in parallel into
// private buffers which are then written to w in tree order, so w still sees
// a single writer. In that mode the EventListener may be invoked
// concurrently.
//
// The returned EmitInfos are in tree order. On error, the output of the trees
// preceding the failed one and the partial output of the failed tree have
// been written to w.
func EmitForest[N comparable](
	w io.Writer, trees []Tree[N], opts *Options, concurrency int,
) ([]EmitInfo, error) {
	opts = opts.Clone().EnsureDefaults()
	treeOpts := func(i int) *Options {
		o := opts.Clone()
		o.TreeID = opts.TreeID + i
		return o
	}

	infos := make([]EmitInfo, len(trees))
	if concurrency <= 1 || len(trees) <= 1 {
		for i, t := range trees {
			info, err := NewEmitter(t, treeOpts(i)).Emit(w)
			infos[i] = info
			if err != nil {
				return infos[:i+1], err
			}
		}
		return infos, nil
	}

	bufs := make([]bytes.Buffer, len(trees))
	errs := make([]error, len(trees))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, t := range trees {
		g.Go(func() error {
			infos[i], errs[i] = NewEmitter(t, treeOpts(i)).Emit(&bufs[i])
			return errs[i]
		})
	}
	// The first failure is located below so that output is written up to the
	// earliest failed tree rather than the first to fail in wall time.
	_ = g.Wait()
	for i := range bufs {
		if _, err := bufs[i].WriteTo(w); err != nil {
			return infos[:i+1], errors.Wrapf(err, "treesas: writing tree %d", opts.TreeID+i)
		}
		if errs[i] != nil {
			return infos[:i+1], errs[i]
		}
	}
	return infos, nil
}
