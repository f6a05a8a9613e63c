// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// incomeTree sends missing incomes down a separate branch that shares the
// right subtree.
func incomeTree() *testTree {
	age := split("age", OpGE, 30, 3, 4)
	age.missingR = true
	income := split("income", OpLT, 50000, 1, 2)
	income.missing = 2
	return newTestTree(income, leaf(0.1), age, leaf(0.3), leaf(0.2))
}

const incomeScoringCode = `if (missing(income)) then do;
    if (not missing(age) and age >= 30) then do;
        treeValue0 = 0.3;
    end;
    else do;
        treeValue0 = 0.2;
    end;
end;
if (income < 50000) then do;
    treeValue0 = 0.1;
end;
else do;
    if (not missing(age) and age >= 30) then do;
        treeValue0 = 0.3;
    end;
    else do;
        treeValue0 = 0.2;
    end;
end;
`

func TestEmit(t *testing.T) {
	tree := incomeTree()
	e := NewEmitter[int](tree, nil)

	// Emitting twice with the same Emitter produces the same text: the
	// traversal state is fully restored after every emission.
	var first, second bytes.Buffer
	info1, err := e.Emit(&first)
	require.NoError(t, err)
	info2, err := e.Emit(&second)
	require.NoError(t, err)
	require.Equal(t, incomeScoringCode, first.String())
	require.Equal(t, first.String(), second.String())
	require.Equal(t, 2, tree.reindexed)

	require.Equal(t, 0, info1.TreeID)
	require.Equal(t, 3, info1.InternalNodes)
	require.Equal(t, 5, info1.Leaves)
	require.Equal(t, 1, info1.MissingBranches)
	require.Equal(t, 2, info1.MaxDepth)
	require.Equal(t, int64(len(incomeScoringCode)), info1.Bytes)
	require.Equal(t, xxhash.Sum64String(incomeScoringCode), info1.Fingerprint)
	require.Equal(t, info1.Fingerprint, info2.Fingerprint)
	require.NoError(t, info1.Err)
}

func TestEmitLeaf(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewEmitter[int](newTestTree(leaf(0.5)), &Options{TreeID: 7}).Emit(&buf)
	require.NoError(t, err)
	require.Equal(t, "treeValue7 = 0.5;\n", buf.String())

	tree := newTestTree(leaf(0))
	tree.nodes[0].value = Expr("1 / (1 + exp(-x))")
	buf.Reset()
	_, err = NewEmitter[int](tree, nil).Emit(&buf)
	require.NoError(t, err)
	require.Equal(t, "treeValue0 = 1 / (1 + exp(-x));\n", buf.String())
}

func TestEmitIndentWidth(t *testing.T) {
	left := split("a", OpLE, 1, 1, 2)
	left.missingL = true
	var buf bytes.Buffer
	_, err := NewEmitter[int](newTestTree(left, leaf(1), leaf(2)), &Options{IndentWidth: 2}).Emit(&buf)
	require.NoError(t, err)
	require.Equal(t, `if (missing(a) or a <= 1) then do;
  treeValue0 = 1;
end;
else do;
  treeValue0 = 2;
end;
`, buf.String())
}

// TestEmitIndentation checks that every line of a deep tree is indented by
// exactly IndentWidth times its nesting level.
func TestEmitIndentation(t *testing.T) {
	const depth = 50
	tree := chain(depth)
	for i := range tree.nodes {
		tree.nodes[i].missingL = true
	}
	var buf bytes.Buffer
	info, err := NewEmitter[int](tree, nil).Emit(&buf)
	require.NoError(t, err)
	require.Equal(t, depth, info.MaxDepth)

	level := 0
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "end;" {
			level--
		}
		require.Equal(t, 4*level, len(line)-len(trimmed), "line %q", line)
		if strings.HasSuffix(trimmed, "then do;") || trimmed == "else do;" {
			level++
		}
	}
	require.Equal(t, 0, level)
}

func TestEmitNode(t *testing.T) {
	tree := incomeTree()
	var buf bytes.Buffer
	info, err := NewEmitter[int](tree, nil).EmitNode(&buf, 2)
	require.NoError(t, err)
	require.Equal(t, `if (not missing(age) and age >= 30) then do;
    treeValue0 = 0.3;
end;
else do;
    treeValue0 = 0.2;
end;
`, buf.String())
	require.Equal(t, 1, info.MaxDepth)
	require.Zero(t, tree.reindexed)

	buf.Reset()
	_, err = NewEmitter[int](tree, nil).EmitNode(&buf, 0)
	require.NoError(t, err)
	require.Equal(t, incomeScoringCode, buf.String())
	require.Equal(t, 1, tree.reindexed)
}

func TestEmitContractViolations(t *testing.T) {
	both := split("x", OpLT, 1, 1, 2)
	both.missingL, both.missingR = true, true
	noMissing := split("x", OpLT, 1, 1, 2)
	badOp := split("x", OpInvalid, 1, 1, 2)
	badOp.missingL = true
	dangling := split("x", OpLT, 1, 1, 7)
	dangling.missingL = true

	testCases := []struct {
		name   string
		tree   *testTree
		output string
		err    string
	}{
		{
			name: "both",
			tree: newTestTree(both, leaf(1), leaf(2)),
			err:  `split on "x" routes missing values both left and right`,
		},
		{
			name: "no-missing",
			tree: newTestTree(noMissing, leaf(1), leaf(2)),
			err:  `split on "x" has no missing-value branch`,
		},
		{
			name: "operator",
			tree: newTestTree(badOp, leaf(1), leaf(2)),
			err:  `split on "x" has invalid operator 0`,
		},
		{
			name:   "dangling",
			tree:   newTestTree(dangling, leaf(1)),
			output: "if (missing(x) or x < 1) then do;\n    treeValue0 = 1;\nend;\nelse do;\n",
			err:    `test: no node 7`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			info, err := NewEmitter[int](tc.tree, nil).Emit(&buf)
			require.EqualError(t, err, tc.err)
			require.True(t, errors.Is(err, ErrContractViolation))
			require.Equal(t, err, info.Err)
			require.Equal(t, tc.output, buf.String())
		})
	}
}

func TestEmitFamilyPanics(t *testing.T) {
	// Error panics are marked as contract violations.
	tree := incomeTree()
	tree.panicAt, tree.panicWith = 3, errors.New("boom")
	var buf bytes.Buffer
	_, err := NewEmitter[int](tree, nil).Emit(&buf)
	require.EqualError(t, err, "boom")
	require.True(t, errors.Is(err, ErrContractViolation))

	// Anything else is not ours to recover, including runtime errors raised
	// by a buggy family.
	for _, v := range []interface{}{"boom", testRuntimeError{}} {
		tree.panicWith = v
		require.PanicsWithValue(t, v, func() {
			_, _ = NewEmitter[int](tree, nil).Emit(&buf)
		})
		require.PanicsWithValue(t, v, func() {
			_, _ = Inspect[int](tree)
		})
	}
}

type testRuntimeError struct{}

func (testRuntimeError) Error() string { return "runtime error: index out of range" }
func (testRuntimeError) RuntimeError() {}

type failingWriter struct {
	remaining int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		n := w.remaining
		w.remaining = 0
		return n, errors.New("disk full")
	}
	w.remaining -= len(p)
	return len(p), nil
}

func TestEmitWriteError(t *testing.T) {
	w := &failingWriter{remaining: 40}
	info, err := NewEmitter[int](incomeTree(), &Options{TreeID: 3}).Emit(w)
	require.EqualError(t, err, "treesas: writing tree 3: disk full")
	require.False(t, errors.Is(err, ErrContractViolation))
	require.Equal(t, int64(40), info.Bytes)
	require.Equal(t, xxhash.Sum64String(incomeScoringCode[:40]), info.Fingerprint)
}

func TestEmitInvalidOptions(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewEmitter[int](incomeTree(), &Options{TreeID: -1}).Emit(&buf)
	require.EqualError(t, err, "treesas: tree id must not be negative, got -1")
	require.Zero(t, buf.Len())
}

func TestOptions(t *testing.T) {
	var o *Options
	o = o.EnsureDefaults()
	require.Equal(t, DefaultIndentWidth, o.IndentWidth)
	require.Equal(t, DefaultLogger{}, o.Logger)
	require.NotNil(t, o.EventListener.TreeEmitted)

	// A negative indent width is rejected by Validate but replaced by the
	// default in EnsureDefaults.
	o = &Options{IndentWidth: -2}
	require.Error(t, o.Validate())
	require.NoError(t, o.EnsureDefaults().Validate())
	require.Equal(t, DefaultIndentWidth, o.IndentWidth)

	// NewEmitter does not modify the caller's options.
	o = &Options{TreeID: 4}
	e := NewEmitter[int](incomeTree(), o)
	require.Zero(t, o.IndentWidth)
	require.Equal(t, 4, e.Options().TreeID)
	require.Equal(t, DefaultIndentWidth, e.Options().IndentWidth)
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		v        float64
		expected string
	}{
		{50000, "50000"},
		{0.1, "0.1"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-07"},
		{math.NaN(), "."},
		{math.Inf(1), "constant('BIG')"},
		{math.Inf(-1), "-constant('BIG')"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, FormatNumber(tc.v))
		require.Equal(t, tc.expected, Number(tc.v).String())
	}
	require.Equal(t, "x * 2", Expr("x * 2").String())
	require.True(t, Expr("x").IsExpr())
	require.False(t, Number(1).IsExpr())
	require.Equal(t, 2.5, Number(2.5).Float())
}

func TestOperator(t *testing.T) {
	for _, op := range []Operator{OpLT, OpLE, OpGT, OpGE, OpEQ} {
		require.True(t, op.Valid())
		parsed, ok := ParseOperator(op.String())
		require.True(t, ok)
		require.Equal(t, op, parsed)
	}
	op, ok := ParseOperator("==")
	require.True(t, ok)
	require.Equal(t, OpEQ, op)

	for _, s := range []string{"", "<>", "!=", "=<"} {
		_, ok := ParseOperator(s)
		require.False(t, ok, "%q", s)
	}
	require.False(t, OpInvalid.Valid())
	require.False(t, Operator(42).Valid())
	require.Equal(t, "invalid", Operator(42).String())
}
