// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package dtree

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/treesas"
	"github.com/cockroachdb/treesas/internal/indenttree"
	"github.com/cockroachdb/treesas/internal/strparse"
)

// Parse parses a single tree in the debug format; see ParseTrees.
func Parse(input string) (*Tree, error) {
	trees, err := ParseTrees(input)
	if err != nil {
		return nil, err
	}
	if len(trees) != 1 {
		return nil, errors.Errorf("dtree: expected a single tree, found %d", len(trees))
	}
	return trees[0], nil
}

// ParseTrees parses one or more trees in the debug format. Every unindented
// line starts a tree. A split is written as
//
//	split <feature> <op> <threshold> [missing=left|right] [missing-node=left|right]
//
// followed by its left and right children indented one level deeper. A split
// without missing=left|right uses a missing-value branch: either a third child
// or, with missing-node, the left or right child itself. Leaves are written as
// `leaf <number>` or `leaf "<expression>"`. Features containing whitespace are
// double-quoted. For example:
//
//	split income < 50000 missing-node=right
//	  leaf 0.1
//	  split age >= 30 missing=right
//	    leaf 0.3
//	    leaf 0.2
func ParseTrees(input string) ([]*Tree, error) {
	roots, err := indenttree.Parse(input)
	if err != nil {
		return nil, errors.Wrap(err, "dtree")
	}
	trees := make([]*Tree, len(roots))
	for i, r := range roots {
		root, err := parseNode(r)
		if err != nil {
			return nil, err
		}
		trees[i] = New(root)
	}
	return trees, nil
}

func parseNode(in *indenttree.Node) (*Node, error) {
	n, missingNode, err := parseLine(in.Value())
	if err != nil {
		return nil, errors.Wrapf(err, "dtree: line %d", in.Line())
	}
	children := in.Children()
	// Only splits carry an operator.
	if n.Op == treesas.OpInvalid {
		if len(children) != 0 {
			return nil, errors.Errorf("dtree: line %d: leaf has children", in.Line())
		}
		return n, nil
	}

	want := 2
	if n.Missing == MissingBranch && missingNode == "" {
		want = 3
	}
	if len(children) != want {
		return nil, errors.Errorf("dtree: line %d: split has %d children, expected %d",
			in.Line(), len(children), want)
	}
	nodes := make([]*Node, len(children))
	for i, c := range children {
		if nodes[i], err = parseNode(c); err != nil {
			return nil, err
		}
	}
	n.Left, n.Right = nodes[0], nodes[1]
	switch {
	case want == 3:
		n.MissingNode = nodes[2]
	case missingNode == "left":
		n.MissingNode = n.Left
	case missingNode == "right":
		n.MissingNode = n.Right
	}
	return n, nil
}

// parseLine parses a single line. For a split it also returns the value of
// the missing-node attribute.
func parseLine(line string) (n *Node, missingNode string, err error) {
	defer strparse.Recover(&err)
	p := strparse.MakeParser("", line)
	n = &Node{}
	switch kind := p.Next(); kind {
	case "leaf":
		if p.IsQuoted() {
			n.Value = treesas.Expr(p.Name())
		} else {
			n.Value = treesas.Number(p.Float())
		}
		p.ExpectDone()
		return n, "", nil
	case "split":
	default:
		p.Errf("expected split or leaf")
	}

	n.Feature = p.Name()
	op, ok := treesas.ParseOperator(p.Next())
	if !ok {
		p.Errf("unknown operator")
	}
	n.Op = op
	n.Threshold = p.Float()
	for !p.Done() {
		key, value, ok := p.TryKeyValue()
		if !ok {
			p.Errf("expected key=value")
		}
		switch {
		case key == "missing" && value == "left":
			n.Missing = MissingLeft
		case key == "missing" && value == "right":
			n.Missing = MissingRight
		case key == "missing" && value == "branch":
			n.Missing = MissingBranch
		case key == "missing-node" && (value == "left" || value == "right"):
			missingNode = value
		default:
			p.Errf("unknown attribute %s=%s", key, value)
		}
	}
	if missingNode != "" && n.Missing != MissingBranch {
		p.Errf("missing-node requires a missing-value branch")
	}
	return n, missingNode, nil
}

// String returns the tree in the debug format accepted by Parse.
func (t *Tree) String() string {
	var buf strings.Builder
	var format func(n *Node, depth int)
	format = func(n *Node, depth int) {
		buf.WriteString(strings.Repeat("  ", depth))
		if n.IsLeaf() {
			buf.WriteString("leaf ")
			if n.Value.IsExpr() {
				buf.WriteString(strconv.Quote(n.Value.String()))
			} else {
				buf.WriteString(strconv.FormatFloat(n.Value.Float(), 'g', -1, 64))
			}
			buf.WriteString("\n")
			return
		}
		buf.WriteString("split ")
		buf.WriteString(quoteFeature(n.Feature))
		buf.WriteString(" ")
		buf.WriteString(n.Op.String())
		buf.WriteString(" ")
		buf.WriteString(strconv.FormatFloat(n.Threshold, 'g', -1, 64))
		var third *Node
		switch {
		case n.Missing == MissingLeft || n.Missing == MissingRight:
			buf.WriteString(" missing=" + n.Missing.String())
		case n.MissingNode != nil && n.MissingNode == n.Left:
			buf.WriteString(" missing-node=left")
		case n.MissingNode != nil && n.MissingNode == n.Right:
			buf.WriteString(" missing-node=right")
		default:
			third = n.MissingNode
		}
		buf.WriteString("\n")
		for _, c := range []*Node{n.Left, n.Right, third} {
			if c != nil {
				format(c, depth+1)
			}
		}
	}
	if t.root != nil {
		format(t.root, 0)
	}
	return buf.String()
}

func quoteFeature(f string) string {
	if f == "" || strings.ContainsFunc(f, unicode.IsSpace) || strings.HasPrefix(f, `"`) {
		return strconv.Quote(f)
	}
	return f
}
