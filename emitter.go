// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/treesas/internal/invariants"
)

// Emitter writes SAS scoring code for a tree. An Emitter may be used for any
// number of sequential emissions, but not concurrently. Emitters of distinct
// trees writing to distinct writers may run in parallel.
type Emitter[N comparable] struct {
	tree Tree[N]
	opts *Options
}

// NewEmitter constructs an Emitter for tree. The options are copied; a nil
// opts uses the defaults.
func NewEmitter[N comparable](tree Tree[N], opts *Options) *Emitter[N] {
	return &Emitter[N]{
		tree: tree,
		opts: opts.Clone().EnsureDefaults(),
	}
}

// Options returns the Emitter's options with defaults applied.
func (e *Emitter[N]) Options() *Options {
	return e.opts
}

// Emit writes the scoring code for the whole tree to w.
func (e *Emitter[N]) Emit(w io.Writer) (EmitInfo, error) {
	return e.emit(w, func() N { return e.tree.Root() })
}

// EmitNode writes the scoring code for the subtree rooted at n to w. When n is
// the tree's root, EmitNode behaves exactly like Emit.
//
// Text written before an error occurred is not retracted.
func (e *Emitter[N]) EmitNode(w io.Writer, n N) (EmitInfo, error) {
	return e.emit(w, func() N { return n })
}

func (e *Emitter[N]) emit(w io.Writer, start func() N) (EmitInfo, error) {
	if err := e.opts.Validate(); err != nil {
		return EmitInfo{TreeID: e.opts.TreeID, Err: err}, err
	}
	s := emitState[N]{
		tree:   e.tree,
		w:      emitWriter{w: w, digest: xxhash.New()},
		treeID: e.opts.TreeID,
		indent: e.opts.IndentWidth,
		depth:  -1,
	}
	s.info.TreeID = e.opts.TreeID
	begin := time.Now()
	err := s.run(start)
	var none N
	invariants.Assertf(s.depth == -1 && s.node == none,
		"treesas: traversal state not restored after emission (depth %d)", s.depth)
	s.info.Bytes = s.w.n
	s.info.Fingerprint = s.w.digest.Sum64()
	s.info.Duration = time.Since(begin)
	s.info.Err = err
	e.opts.EventListener.TreeEmitted(s.info)
	return s.info, err
}

// emitState is the traversal context of a single emission. depth is -1
// outside of any node so that the root's statements are emitted at depth 0.
type emitState[N comparable] struct {
	tree   Tree[N]
	w      emitWriter
	treeID int
	indent int
	depth  int
	// node is the node currently being emitted. It is restored to the parent
	// when a child's emission returns.
	node N
	buf  []byte
	info EmitInfo
}

// run emits the subtree rooted at start(), converting error panics raised by
// the tree family into returned errors.
func (s *emitState[N]) run(start func() N) (err error) {
	defer recoverContractViolation(&err)
	return s.walk(start())
}

func (s *emitState[N]) walk(n N) error {
	parent := s.node
	s.node = n
	if n == s.tree.Root() {
		if ix, ok := s.tree.(Indexer[N]); ok {
			ix.Reindex(n)
		}
	}
	s.depth++
	defer func() {
		s.node = parent
		s.depth--
	}()
	s.info.MaxDepth = max(s.info.MaxDepth, s.depth)

	if !s.tree.IsInternal(n) {
		s.info.Leaves++
		return s.printf("treeValue%d = %s;", s.treeID, s.tree.LeafValue(n))
	}
	s.info.InternalNodes++

	v := SanitizeIdent(s.tree.SplitVariable(n))
	var cond string
	switch left, right := s.tree.RoutesMissingLeft(n), s.tree.RoutesMissingRight(n); {
	case left && right:
		return ContractViolationf("split on %q routes missing values both left and right", v)
	case left:
		cond = "missing(" + v + ") or "
	case right:
		cond = "not missing(" + v + ") and "
	default:
		m, ok := s.tree.Missing(n)
		if !ok {
			return ContractViolationf("split on %q has no missing-value branch", v)
		}
		s.info.MissingBranches++
		if err := s.printf("if (missing(%s)) then do;", v); err != nil {
			return err
		}
		if err := s.walk(m); err != nil {
			return err
		}
		if err := s.printf("end;"); err != nil {
			return err
		}
	}

	op := s.tree.DecisionOperator(n)
	if !op.Valid() {
		return ContractViolationf("split on %q has invalid operator %d", v, uint8(op))
	}
	if err := s.printf("if (%s%s %s %s) then do;", cond, v, op, FormatNumber(s.tree.SplitValue(n))); err != nil {
		return err
	}
	if err := s.walk(s.tree.Left(n)); err != nil {
		return err
	}
	if err := s.printf("end;"); err != nil {
		return err
	}
	if err := s.printf("else do;"); err != nil {
		return err
	}
	if err := s.walk(s.tree.Right(n)); err != nil {
		return err
	}
	return s.printf("end;")
}

// printf writes one line indented to the current depth.
func (s *emitState[N]) printf(format string, args ...interface{}) error {
	s.buf = s.buf[:0]
	for i := s.indent * s.depth; i > 0; i-- {
		s.buf = append(s.buf, ' ')
	}
	s.buf = fmt.Appendf(s.buf, format, args...)
	s.buf = append(s.buf, '\n')
	if _, err := s.w.Write(s.buf); err != nil {
		return errors.Wrapf(err, "treesas: writing tree %d", s.treeID)
	}
	return nil
}

// emitWriter counts and hashes everything written through it.
type emitWriter struct {
	w      io.Writer
	digest *xxhash.Digest
	n      int64
}

func (w *emitWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	_, _ = w.digest.Write(p[:n])
	w.n += int64(n)
	return n, err
}
