// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"fmt"
	"strings"
)

const none = -1

// testNode is a node of a testTree. A node without an operator is a leaf.
type testNode struct {
	v                    string
	op                   Operator
	split                float64
	left, right, missing int
	missingL, missingR   bool
	value                Value
}

// testTree is a minimal Tree over node indexes; the root is node 0.
type testTree struct {
	nodes     []testNode
	reindexed int
	// panicWith, if set, is raised when node panicAt is visited.
	panicAt   int
	panicWith interface{}
}

var _ Tree[int] = (*testTree)(nil)
var _ Indexer[int] = (*testTree)(nil)

func leaf(v float64) testNode {
	return testNode{left: none, right: none, missing: none, value: Number(v)}
}

func split(v string, op Operator, value float64, left, right int) testNode {
	return testNode{v: v, op: op, split: value, left: left, right: right, missing: none}
}

func newTestTree(nodes ...testNode) *testTree {
	return &testTree{nodes: nodes}
}

func (t *testTree) get(n int) *testNode {
	if t.panicWith != nil && n == t.panicAt {
		panic(t.panicWith)
	}
	if n < 0 || n >= len(t.nodes) {
		panic(ContractViolationf("test: no node %d", n))
	}
	return &t.nodes[n]
}

func (t *testTree) Reindex(int) { t.reindexed++ }
func (t *testTree) Root() int { return 0 }
func (t *testTree) IsInternal(n int) bool { return t.get(n).left != none }
func (t *testTree) SplitVariable(n int) string { return t.get(n).v }
func (t *testTree) SplitValue(n int) float64 { return t.get(n).split }
func (t *testTree) DecisionOperator(n int) Operator { return t.get(n).op }
func (t *testTree) Left(n int) int { return t.get(n).left }
func (t *testTree) Right(n int) int { return t.get(n).right }
func (t *testTree) RoutesMissingLeft(n int) bool { return t.get(n).missingL }
func (t *testTree) RoutesMissingRight(n int) bool { return t.get(n).missingR }
func (t *testTree) LeafValue(n int) Value { return t.get(n).value }
func (t *testTree) Missing(n int) (int, bool) {
	m := t.get(n).missing
	return m, m != none
}

// chain returns a tree of depth n in which every split's left child is a leaf
// and its right child is the next split.
func chain(n int) *testTree {
	t := newTestTree()
	for i := 0; i < n; i++ {
		t.nodes = append(t.nodes,
			split(fmt.Sprintf("x%d", i), OpLE, float64(i), 2*i+1, 2*i+2),
			leaf(float64(i)))
	}
	t.nodes = append(t.nodes, leaf(-1))
	return t
}

// testLogger records log lines.
type testLogger struct {
	buf strings.Builder
}

func (l *testLogger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(&l.buf, "I "+format+"\n", args...)
}

func (l *testLogger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(&l.buf, "E "+format+"\n", args...)
}

func (l *testLogger) Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}
