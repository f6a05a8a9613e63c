// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package treesas translates in-memory decision trees into SAS scoring code.
//
// A tree is emitted as a nested block of if/then/else statements in which every
// leaf assigns the variable treeValue<id>. The traversal is written once
// against the Tree interface; each tree-model family (see the dtree and gbtree
// packages) supplies the per-node queries the traversal needs.
//
// For example, a tree splitting on income with the missing values routed to
// the left branch is emitted as:
//
//	if (missing(income) or income < 50000) then do;
//	    treeValue0 = 0.1;
//	end;
//	else do;
//	    treeValue0 = 0.2;
//	end;
package treesas

// Tree is the set of node inspection operations the Emitter requires from a
// tree-model family. N is the family's node handle; the Emitter compares
// handles against Root to detect the start of an emission, so handles must be
// comparable.
//
// Methods other than Root and IsInternal are only invoked on the node kind
// they describe: split accessors on internal nodes, LeafValue on leaves. A
// family that is handed a malformed tree may panic with an error created by
// ContractViolationf; the Emitter converts such panics into returned errors.
type Tree[N comparable] interface {
	// Root returns the root node of the tree.
	Root() N
	// IsInternal returns true if n is a split node and false if it is a leaf.
	IsInternal(n N) bool
	// SplitVariable returns the name of the variable n splits on.
	SplitVariable(n N) string
	// SplitValue returns the threshold n compares the split variable against.
	SplitValue(n N) float64
	// DecisionOperator returns the comparison of the split condition. The left
	// child is taken when the condition holds.
	DecisionOperator(n N) Operator
	// Left returns the child taken when the split condition holds.
	Left(n N) N
	// Right returns the child taken when the split condition does not hold.
	Right(n N) N
	// Missing returns the child that handles a missing split variable, if the
	// node has one. It is only consulted when the node routes missing values
	// to neither side.
	Missing(n N) (N, bool)
	// RoutesMissingLeft returns true if missing values take the left branch.
	RoutesMissingLeft(n N) bool
	// RoutesMissingRight returns true if missing values take the right branch.
	RoutesMissingRight(n N) bool
	// LeafValue returns the value assigned by the leaf n.
	LeafValue(n N) Value
}

// Indexer is implemented by trees that keep bookkeeping which must be rebuilt
// at the start of every emission, such as a lookup table from node ids to
// nodes. The Emitter calls Reindex each time it enters the root node.
type Indexer[N comparable] interface {
	Reindex(root N)
}
