// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package dtree is the tree family for single decision trees: pointer-linked
// nodes that state explicitly how each split handles a missing value.
package dtree

import (
	"github.com/cockroachdb/treesas"
)

// MissingMode describes how a split handles a missing split variable.
type MissingMode uint8

const (
	// MissingBranch sends missing values down a separate missing-value
	// branch, Node.MissingNode, which is checked before the split condition.
	MissingBranch MissingMode = iota
	// MissingLeft sends missing values to the left child.
	MissingLeft
	// MissingRight sends missing values to the right child.
	MissingRight
)

// String implements fmt.Stringer.
func (m MissingMode) String() string {
	switch m {
	case MissingBranch:
		return "branch"
	case MissingLeft:
		return "left"
	case MissingRight:
		return "right"
	default:
		return "unknown"
	}
}

// Node is a node of a decision tree. A node with neither a left nor a right
// child is a leaf and only Value is meaningful.
type Node struct {
	Feature   string
	Op        treesas.Operator
	Threshold float64
	// Left is taken when `Feature Op Threshold` holds, Right otherwise.
	Left  *Node
	Right *Node

	Missing MissingMode
	// MissingNode is the missing-value branch used by MissingBranch. It may
	// be the same node as Left or Right.
	MissingNode *Node

	Value treesas.Value
}

// Leaf returns a leaf assigning the number v.
func Leaf(v float64) *Node {
	return &Node{Value: treesas.Number(v)}
}

// LeafExpr returns a leaf assigning the SAS expression expr.
func LeafExpr(expr string) *Node {
	return &Node{Value: treesas.Expr(expr)}
}

// Split returns a split node. Missing values take the MissingBranch mode with
// no missing node; use WithMissing or WithMissingNode to route them.
func Split(feature string, op treesas.Operator, threshold float64, left, right *Node) *Node {
	return &Node{
		Feature:   feature,
		Op:        op,
		Threshold: threshold,
		Left:      left,
		Right:     right,
	}
}

// WithMissing sets the node's missing-value mode and returns the node.
func (n *Node) WithMissing(m MissingMode) *Node {
	n.Missing = m
	return n
}

// WithMissingNode sets the node's missing-value branch, switching it to
// MissingBranch, and returns the node.
func (n *Node) WithMissingNode(m *Node) *Node {
	n.Missing = MissingBranch
	n.MissingNode = m
	return n
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Tree is a decision tree. It implements treesas.Tree.
type Tree struct {
	root *Node
}

var _ treesas.Tree[*Node] = (*Tree)(nil)

// New returns the tree rooted at root.
func New(root *Node) *Tree {
	return &Tree{root: root}
}

// Root implements treesas.Tree.
func (t *Tree) Root() *Node {
	if t.root == nil {
		panic(treesas.ContractViolationf("dtree: tree has no root"))
	}
	return t.root
}

// IsInternal implements treesas.Tree.
func (t *Tree) IsInternal(n *Node) bool {
	return !n.IsLeaf()
}

// SplitVariable implements treesas.Tree.
func (t *Tree) SplitVariable(n *Node) string {
	return n.Feature
}

// SplitValue implements treesas.Tree.
func (t *Tree) SplitValue(n *Node) float64 {
	return n.Threshold
}

// DecisionOperator implements treesas.Tree.
func (t *Tree) DecisionOperator(n *Node) treesas.Operator {
	return n.Op
}

// Left implements treesas.Tree.
func (t *Tree) Left(n *Node) *Node {
	if n.Left == nil {
		panic(treesas.ContractViolationf("dtree: split on %q has no left child", n.Feature))
	}
	return n.Left
}

// Right implements treesas.Tree.
func (t *Tree) Right(n *Node) *Node {
	if n.Right == nil {
		panic(treesas.ContractViolationf("dtree: split on %q has no right child", n.Feature))
	}
	return n.Right
}

// Missing implements treesas.Tree.
func (t *Tree) Missing(n *Node) (*Node, bool) {
	return n.MissingNode, n.MissingNode != nil
}

// RoutesMissingLeft implements treesas.Tree.
func (t *Tree) RoutesMissingLeft(n *Node) bool {
	return n.Missing == MissingLeft
}

// RoutesMissingRight implements treesas.Tree.
func (t *Tree) RoutesMissingRight(n *Node) bool {
	return n.Missing == MissingRight
}

// LeafValue implements treesas.Tree.
func (t *Tree) LeafValue(n *Node) treesas.Value {
	return n.Value
}
