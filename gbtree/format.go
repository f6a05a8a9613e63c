// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package gbtree

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/treesas/internal/indenttree"
	"github.com/cockroachdb/treesas/internal/strparse"
)

// ParseForest parses a forest in the debug format. Each tree starts with an
// unindented booster[<i>] line followed by its node table, one node per line
// indented one level:
//
//	booster[0]
//	  0: split f0 < 0.5 yes=1 no=2 missing=1
//	  1: leaf 0.1
//	  2: leaf -0.3
//
// The boosters must be numbered consecutively from zero. The first node of
// every tree is its root. References between nodes are not checked until the
// tree is emitted.
func ParseForest(input string) (*Forest, error) {
	roots, err := indenttree.Parse(input)
	if err != nil {
		return nil, errors.Wrap(err, "gbtree")
	}
	f := &Forest{Trees: make([]*Tree, len(roots))}
	for i, r := range roots {
		if want := fmt.Sprintf("booster[%d]", i); r.Value() != want {
			return nil, errors.Errorf("gbtree: line %d: expected %q, found %q", r.Line(), want, r.Value())
		}
		if len(r.Children()) == 0 {
			return nil, errors.Errorf("gbtree: line %d: booster has no nodes", r.Line())
		}
		t, err := parseNodes(r.Children())
		if err != nil {
			return nil, err
		}
		f.Trees[i] = t
	}
	return f, nil
}

// Parse parses a single tree: a node table without a booster header.
func Parse(input string) (*Tree, error) {
	lines, err := indenttree.Parse(input)
	if err != nil {
		return nil, errors.Wrap(err, "gbtree")
	}
	return parseNodes(lines)
}

func parseNodes(lines []*indenttree.Node) (*Tree, error) {
	t := &Tree{}
	for _, l := range lines {
		if len(l.Children()) != 0 {
			return nil, errors.Errorf("gbtree: line %d: nodes cannot be nested", l.Line())
		}
		n, err := parseNode(l.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "gbtree: line %d", l.Line())
		}
		t.Nodes = append(t.Nodes, n)
	}
	return t, nil
}

func indent(input string) string {
	var buf strings.Builder
	for _, l := range strings.Split(strings.TrimRight(input, "\n"), "\n") {
		buf.WriteString("  ")
		buf.WriteString(l)
		buf.WriteString("\n")
	}
	return buf.String()
}

func parseNode(line string) (n Node, err error) {
	defer strparse.Recover(&err)
	p := strparse.MakeParser(":", line)
	n.ID = NodeID(p.Int())
	p.Expect(":")
	switch p.Next() {
	case "leaf":
		n.IsLeaf = true
		n.Leaf = p.Float()
		p.ExpectDone()
		return n, nil
	case "split":
	default:
		p.Errf("expected split or leaf")
	}
	n.Split = p.Name()
	p.Expect("<")
	n.Condition = p.Float()
	var seen [3]bool
	for !p.Done() {
		key, value, ok := p.TryKeyValue()
		if !ok {
			p.Errf("expected key=value")
		}
		id, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			p.Errf("cannot parse node id: %v", err)
		}
		switch key {
		case "yes":
			n.Yes, seen[0] = NodeID(id), true
		case "no":
			n.No, seen[1] = NodeID(id), true
		case "missing":
			n.Missing, seen[2] = NodeID(id), true
		default:
			p.Errf("unknown attribute %s", key)
		}
	}
	if seen != [3]bool{true, true, true} {
		p.Errf("split requires yes, no and missing")
	}
	return n, nil
}

// String returns the tree's node table in the format accepted by Parse.
func (t *Tree) String() string {
	var buf strings.Builder
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.IsLeaf {
			fmt.Fprintf(&buf, "%d: leaf %s\n", n.ID, strconv.FormatFloat(n.Leaf, 'g', -1, 64))
			continue
		}
		fmt.Fprintf(&buf, "%d: split %s < %s yes=%d no=%d missing=%d\n",
			n.ID, quoteFeature(n.Split), strconv.FormatFloat(n.Condition, 'g', -1, 64),
			n.Yes, n.No, n.Missing)
	}
	return buf.String()
}

// String returns the forest in the format accepted by ParseForest.
func (f *Forest) String() string {
	var buf strings.Builder
	for i, t := range f.Trees {
		fmt.Fprintf(&buf, "booster[%d]\n", i)
		buf.WriteString(indent(t.String()))
	}
	return buf.String()
}

func quoteFeature(f string) string {
	if f == "" || strings.ContainsFunc(f, unicode.IsSpace) || strings.ContainsAny(f, `":`) {
		return strconv.Quote(f)
	}
	return f
}
