// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package gbtree is the tree family for gradient-boosted trees. A tree is a
// flat table of nodes addressed by id; every split names the ids of its yes,
// no and missing children and always compares with "<".
package gbtree

import (
	"io"

	"github.com/cockroachdb/swiss"
	"github.com/cockroachdb/treesas"
)

// NodeID identifies a node within a Tree.
type NodeID int32

// Node is a row of a boosted tree's node table.
type Node struct {
	ID NodeID
	// Split is the feature a split node tests; the yes child is taken when the
	// feature is less than Condition.
	Split     string
	Condition float64
	Yes       NodeID
	No        NodeID
	// Missing is the child taken when the feature is missing. When it equals
	// Yes or No the missing values are folded into that branch; otherwise the
	// node has a separate missing-value branch.
	Missing NodeID

	IsLeaf bool
	Leaf   float64
}

// Tree is a boosted tree. The first node in Nodes is the root. Tree
// implements treesas.Tree and treesas.Indexer.
type Tree struct {
	Nodes []Node

	// index maps node ids to positions in Nodes. It is rebuilt by Reindex at
	// the start of every emission, so Nodes may be modified between
	// emissions.
	index *swiss.Map[NodeID, int]
}

var _ treesas.Tree[NodeID] = (*Tree)(nil)
var _ treesas.Indexer[NodeID] = (*Tree)(nil)

// Reindex implements treesas.Indexer.
func (t *Tree) Reindex(root NodeID) {
	t.index = swiss.New[NodeID, int](len(t.Nodes))
	for i := range t.Nodes {
		id := t.Nodes[i].ID
		if _, ok := t.index.Get(id); ok {
			panic(treesas.ContractViolationf("gbtree: duplicate node %d", id))
		}
		t.index.Put(id, i)
	}
	t.checkAcyclic(root)
}

// checkAcyclic panics if a node can be reached from itself through its yes,
// no or missing children. Ids missing from the index are skipped; they are
// reported when the walk reaches them.
func (t *Tree) checkAcyclic(root NodeID) {
	const (
		unvisited = iota
		onPath
		done
	)
	start, ok := t.index.Get(root)
	if !ok {
		return
	}
	type frame struct {
		pos  int
		next int
	}
	state := make([]uint8, len(t.Nodes))
	state[start] = onPath
	stack := []frame{{pos: start}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		n := &t.Nodes[f.pos]
		if n.IsLeaf || f.next == 3 {
			state[f.pos] = done
			stack = stack[:len(stack)-1]
			continue
		}
		child := [3]NodeID{n.Yes, n.No, n.Missing}[f.next]
		f.next++
		i, ok := t.index.Get(child)
		if !ok {
			continue
		}
		switch state[i] {
		case onPath:
			panic(treesas.ContractViolationf("gbtree: cycle through node %d", child))
		case unvisited:
			state[i] = onPath
			stack = append(stack, frame{pos: i})
		}
	}
}

func (t *Tree) node(id NodeID) *Node {
	if t.index == nil {
		t.Reindex(t.Root())
	}
	i, ok := t.index.Get(id)
	if !ok {
		panic(treesas.ContractViolationf("gbtree: node %d not found", id))
	}
	return &t.Nodes[i]
}

// Root implements treesas.Tree.
func (t *Tree) Root() NodeID {
	if len(t.Nodes) == 0 {
		panic(treesas.ContractViolationf("gbtree: tree has no nodes"))
	}
	return t.Nodes[0].ID
}

// IsInternal implements treesas.Tree.
func (t *Tree) IsInternal(id NodeID) bool {
	return !t.node(id).IsLeaf
}

// SplitVariable implements treesas.Tree.
func (t *Tree) SplitVariable(id NodeID) string {
	return t.node(id).Split
}

// SplitValue implements treesas.Tree.
func (t *Tree) SplitValue(id NodeID) float64 {
	return t.node(id).Condition
}

// DecisionOperator implements treesas.Tree.
func (t *Tree) DecisionOperator(NodeID) treesas.Operator {
	return treesas.OpLT
}

// Left implements treesas.Tree.
func (t *Tree) Left(id NodeID) NodeID {
	return t.node(t.node(id).Yes).ID
}

// Right implements treesas.Tree.
func (t *Tree) Right(id NodeID) NodeID {
	return t.node(t.node(id).No).ID
}

// Missing implements treesas.Tree.
func (t *Tree) Missing(id NodeID) (NodeID, bool) {
	m := t.node(id).Missing
	_, ok := t.index.Get(m)
	return m, ok
}

// RoutesMissingLeft implements treesas.Tree.
func (t *Tree) RoutesMissingLeft(id NodeID) bool {
	n := t.node(id)
	return n.Missing == n.Yes
}

// RoutesMissingRight implements treesas.Tree.
func (t *Tree) RoutesMissingRight(id NodeID) bool {
	n := t.node(id)
	return n.Missing == n.No && n.Missing != n.Yes
}

// LeafValue implements treesas.Tree.
func (t *Tree) LeafValue(id NodeID) treesas.Value {
	return treesas.Number(t.node(id).Leaf)
}

// Emit writes the SAS scoring code for the tree to w.
func (t *Tree) Emit(w io.Writer, opts *treesas.Options) (treesas.EmitInfo, error) {
	return treesas.NewEmitter[NodeID](t, opts).Emit(w)
}

// Forest is an ensemble of boosted trees.
type Forest struct {
	Trees []*Tree
}

// Emit writes the scoring code of every tree to w, tree i assigning
// treeValue<opts.TreeID+i>; see treesas.EmitForest. Combining the tree
// outputs into a prediction is left to the caller.
func (f *Forest) Emit(
	w io.Writer, opts *treesas.Options, concurrency int,
) ([]treesas.EmitInfo, error) {
	ts := make([]treesas.Tree[NodeID], len(f.Trees))
	for i := range f.Trees {
		ts[i] = f.Trees[i]
	}
	return treesas.EmitForest(w, ts, opts, concurrency)
}
