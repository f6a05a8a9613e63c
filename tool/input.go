// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/treesas/dtree"
	"github.com/cockroachdb/treesas/gbtree"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// family is a tree family, settable as a flag.
type family string

const (
	familyAuto   family = "auto"
	familyDTree  family = "dtree"
	familyGBTree family = "gbtree"
)

func (f *family) String() string {
	return string(*f)
}

func (f *family) Type() string {
	return "family"
}

func (f *family) Set(v string) error {
	switch family(v) {
	case familyAuto, familyDTree, familyGBTree:
		*f = family(v)
		return nil
	}
	return errors.Errorf("unknown tree family %q", v)
}

// readInput returns the contents of the named file, decompressing files
// ending in .gz, .zst or .sz (snappy framing format).
func readInput(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return "", errors.Wrapf(err, "%s", path)
		}
		defer zr.Close()
		r = zr
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return "", errors.Wrapf(err, "%s", path)
		}
		defer zr.Close()
		r = zr
	case ".sz":
		r = snappy.NewReader(r)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "%s", path)
	}
	return string(b), nil
}

// firstLine returns the first line of input that is neither blank nor a
// comment, with surrounding whitespace removed.
func firstLine(input string) string {
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return line
		}
	}
	return ""
}

// detectFamily guesses the family of a tree file from its first line: boosted
// trees start with a booster header or a node id.
func detectFamily(input string) family {
	line := firstLine(input)
	if strings.HasPrefix(line, "booster[") {
		return familyGBTree
	}
	if id, _, ok := strings.Cut(line, ":"); ok && id != "" &&
		strings.IndexFunc(id, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return familyGBTree
	}
	return familyDTree
}

// model is the parsed contents of a tree file: one or more trees of a single
// family.
type model struct {
	family family
	dtrees []*dtree.Tree
	forest *gbtree.Forest
	// headerless is set for a boosted tree given as a bare node table.
	headerless bool
}

func parseModel(input string, f family) (*model, error) {
	if f == familyAuto {
		f = detectFamily(input)
	}
	m := &model{family: f}
	var err error
	switch f {
	case familyDTree:
		m.dtrees, err = dtree.ParseTrees(input)
	case familyGBTree:
		if strings.HasPrefix(firstLine(input), "booster[") {
			m.forest, err = gbtree.ParseForest(input)
		} else {
			var t *gbtree.Tree
			if t, err = gbtree.Parse(input); err == nil {
				m.forest = &gbtree.Forest{Trees: []*gbtree.Tree{t}}
				m.headerless = true
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func loadModel(path string, f family) (*model, error) {
	input, err := readInput(path)
	if err != nil {
		return nil, err
	}
	m, err := parseModel(input, f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return m, nil
}

func (m *model) numTrees() int {
	if m.family == familyGBTree {
		return len(m.forest.Trees)
	}
	return len(m.dtrees)
}

// String returns the trees in their canonical debug format.
func (m *model) String() string {
	switch {
	case m.headerless:
		return m.forest.Trees[0].String()
	case m.family == familyGBTree:
		return m.forest.String()
	}
	var buf strings.Builder
	for _, t := range m.dtrees {
		buf.WriteString(t.String())
	}
	return buf.String()
}
