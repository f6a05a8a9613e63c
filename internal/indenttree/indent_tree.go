// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package indenttree implements a simple text processor which parses a
// hierarchy defined using indentation; see Parse.
package indenttree

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Parse a multi-line input string into trees of nodes. For example:
//
//	a
//	  a1
//	    a11
//	  a2
//	b
//	  b1
//
// is parsed into two Nodes (a and b). Node a has two children (a1, a2), and a1
// has one child (a11); node b has one child (b1).
//
// Every distinct indentation width in the input is a nesting level, and a node
// must be exactly one level deeper than its parent. For example, the
// following is not valid because b12 skips the level of a1:
//
//	a
//	  a1
//	    a11
//	b
//	    b12
//
// Tabs cannot be used for indentation. Blank lines and lines whose first
// non-space character is '#' are ignored.
func Parse(input string) ([]*Node, error) {
	type line struct {
		text   string
		num    int
		indent int
	}
	var lines []line
	for i, l := range strings.Split(input, "\n") {
		trimmed := strings.TrimLeft(l, " ")
		if strings.TrimSpace(trimmed) == "" || trimmed[0] == '#' {
			continue
		}
		if trimmed[0] == '\t' {
			return nil, errors.Errorf("line %d: tab indentation", i+1)
		}
		lines = append(lines, line{
			text:   strings.TrimRight(trimmed, " \t\r"),
			num:    i + 1,
			indent: len(l) - len(trimmed),
		})
	}
	if len(lines) == 0 {
		return nil, errors.Errorf("empty input")
	}

	var levels []int
	for _, l := range lines {
		levels = append(levels, l.indent)
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	type open struct {
		node  *Node
		level int
	}
	var roots []*Node
	var stack []open
	for _, l := range lines {
		level, _ := slices.BinarySearch(levels, l.indent)
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		n := &Node{value: l.text, line: l.num}
		if len(stack) == 0 {
			if level != 0 {
				return nil, errors.Errorf("line %d: inconsistent indentation", l.num)
			}
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			if level != parent.level+1 {
				return nil, errors.Errorf("line %d: inconsistent indentation", l.num)
			}
			parent.node.children = append(parent.node.children, n)
		}
		stack = append(stack, open{node: n, level: level})
	}
	return roots, nil
}

// Node in a hierarchy returned by Parse.
type Node struct {
	value    string
	line     int
	children []*Node
}

// Value returns the contents of the line for this node (without the
// indentation).
func (n *Node) Value() string {
	return n.value
}

// Line returns the 1-based line number of the node in the input.
func (n *Node) Line() int {
	return n.line
}

// Children returns the child nodes, if any.
func (n *Node) Children() []*Node {
	return n.children
}
