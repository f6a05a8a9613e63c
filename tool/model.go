// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/treesas"
	"github.com/cockroachdb/treesas/dtree"
	"github.com/cockroachdb/treesas/gbtree"
	"github.com/disiqueira/gotree/v3"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
)

// modelT implements the tree-file tools, including both configuration state
// and the commands themselves.
type modelT struct {
	Emit     *cobra.Command
	Describe *cobra.Command
	Fmt      *cobra.Command

	logger      treesas.Logger
	family      family
	treeID      int
	indent      int
	concurrency int
	verbose     bool
	showTrees   bool
	plotHeight  int
}

func newModel(logger treesas.Logger) *modelT {
	m := &modelT{
		logger: logger,
		family: familyAuto,
	}

	m.Emit = &cobra.Command{
		Use:   "emit <tree-files>",
		Short: "print SAS scoring code",
		Long: `
Print the SAS scoring code for every tree in the specified files. Each tree
assigns its own output variable, treeValue<id>; ids are allocated
consecutively starting at --tree-id across all trees of all files. Files
ending in .gz, .zst or .sz are decompressed.
`,
		Args: cobra.MinimumNArgs(1),
		Run:  m.runEmit,
	}
	m.Describe = &cobra.Command{
		Use:   "describe <tree-files>",
		Short: "print tree statistics",
		Long: `
Print the shape of every tree in the specified files: the number of splits and
leaves, the depth, and how splits handle missing values (left/right/branch).
`,
		Args: cobra.MinimumNArgs(1),
		Run:  m.runDescribe,
	}
	m.Fmt = &cobra.Command{
		Use:   "fmt <tree-files>",
		Short: "print trees in canonical form",
		Long: `
Print the trees in the specified files in the canonical debug format.
`,
		Args: cobra.MinimumNArgs(1),
		Run:  m.runFmt,
	}

	for _, cmd := range []*cobra.Command{m.Emit, m.Describe, m.Fmt} {
		cmd.Flags().Var(
			&m.family, "family", "tree family: auto, dtree or gbtree")
	}
	m.Emit.Flags().IntVar(
		&m.treeID, "tree-id", 0, "id of the first tree's output variable")
	m.Emit.Flags().IntVar(
		&m.indent, "indent", treesas.DefaultIndentWidth, "spaces per nesting level; values below 1 select the default")
	m.Emit.Flags().IntVarP(
		&m.concurrency, "concurrency", "c", 1, "number of trees rendered in parallel")
	m.Emit.Flags().BoolVarP(
		&m.verbose, "verbose", "v", false, "log every emitted tree")
	m.Describe.Flags().BoolVar(
		&m.showTrees, "tree", false, "draw every tree")
	m.Describe.Flags().IntVar(
		&m.plotHeight, "plot", 0, "plot the number of leaves per depth with the given height (0 disables)")
	return m
}

func (m *modelT) runEmit(cmd *cobra.Command, args []string) {
	stdout, stderr := cmd.OutOrStdout(), cmd.OutOrStderr()
	opts := &treesas.Options{
		TreeID:      m.treeID,
		IndentWidth: m.indent,
		Logger:      m.logger,
	}
	metrics := treesas.NewMetrics("treesas")
	opts.EventListener = metrics.EventListener()
	if m.verbose {
		opts.EventListener = treesas.TeeEventListener(
			opts.EventListener, treesas.MakeLoggingEventListener(m.logger))
		defer logSummary(m.logger, metrics)
	}
	for _, arg := range args {
		md, err := loadModel(arg, m.family)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			continue
		}
		if _, err := md.emit(stdout, opts, m.concurrency); err != nil {
			fmt.Fprintf(stderr, "%s: %s\n", arg, err)
		}
		opts.TreeID += md.numTrees()
	}
}

// logSummary logs the totals accumulated in metrics.
func logSummary(logger treesas.Logger, metrics *treesas.Metrics) {
	value := func(c prometheus.Counter) int64 {
		metric := &dto.Metric{}
		if err := c.Write(metric); err != nil {
			return 0
		}
		return int64(metric.GetCounter().GetValue())
	}
	logger.Infof("emitted %s trees, %s; %d errors",
		crhumanize.Count(value(metrics.TreesEmitted), crhumanize.Compact),
		crhumanize.Bytes(value(metrics.BytesEmitted), crhumanize.Compact, crhumanize.OmitI),
		value(metrics.EmitErrors))
}

func (m *modelT) runDescribe(cmd *cobra.Command, args []string) {
	stdout, stderr := cmd.OutOrStdout(), cmd.OutOrStderr()
	for _, arg := range args {
		md, err := loadModel(arg, m.family)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			continue
		}
		stats, err := md.inspect()
		if err != nil {
			fmt.Fprintf(stderr, "%s: %s\n", arg, err)
			continue
		}
		noun := "trees"
		if len(stats) == 1 {
			noun = "tree"
		}
		fmt.Fprintf(stdout, "%s: %s, %d %s\n", arg, md.family, len(stats), noun)
		describeStats(stdout, stats)
		if m.plotHeight > 0 {
			fmt.Fprintf(stdout, "leaves per depth:\n%s\n", plotDepths(stats, m.plotHeight))
		}
		if m.showTrees {
			for i := 0; i < md.numTrees(); i++ {
				fmt.Fprint(stdout, md.render(i))
			}
		}
	}
}

func (m *modelT) runFmt(cmd *cobra.Command, args []string) {
	stdout, stderr := cmd.OutOrStdout(), cmd.OutOrStderr()
	for _, arg := range args {
		md, err := loadModel(arg, m.family)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			continue
		}
		fmt.Fprint(stdout, md.String())
	}
}

// describeStats prints a table with a row per tree followed by the leaf depth
// distribution and the features used across all trees.
func describeStats(w io.Writer, stats []treesas.Stats) {
	maxDepth := 0
	features := make(map[string]struct{})
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"tree", "splits", "leaves", "depth", "missing"})
	for i, s := range stats {
		tbl.Append([]string{
			fmt.Sprint(i),
			fmt.Sprint(s.InternalNodes),
			fmt.Sprint(s.Leaves),
			fmt.Sprint(s.MaxDepth),
			fmt.Sprintf("%d/%d/%d", s.MissingLeft, s.MissingRight, s.MissingBranches),
		})
		maxDepth = max(maxDepth, s.MaxDepth)
		for _, f := range s.Variables {
			features[f] = struct{}{}
		}
	}
	tbl.Render()

	hist := hdrhistogram.New(1, int64(max(maxDepth, 2)), 3)
	for _, s := range stats {
		for _, d := range s.LeafDepths {
			_ = hist.RecordValue(int64(d))
		}
	}
	fmt.Fprintf(w, "leaf depth: p50=%d p90=%d p99=%d max=%d mean=%.2f\n",
		hist.ValueAtPercentile(50), hist.ValueAtPercentile(90),
		hist.ValueAtPercentile(99), hist.Max(), hist.Mean())
	fmt.Fprintf(w, "features: %s\n", strings.Join(slices.Sorted(maps.Keys(features)), " "))
}

// plotDepths plots the number of leaves at each depth, across all trees.
func plotDepths(stats []treesas.Stats, height int) string {
	var counts []float64
	for _, s := range stats {
		for _, d := range s.LeafDepths {
			for len(counts) <= d {
				counts = append(counts, 0)
			}
			counts[d]++
		}
	}
	return asciigraph.Plot(counts, asciigraph.Height(height))
}

func (m *model) emit(
	w io.Writer, opts *treesas.Options, concurrency int,
) ([]treesas.EmitInfo, error) {
	if m.family == familyGBTree {
		return m.forest.Emit(w, opts, concurrency)
	}
	return dtree.EmitTrees(w, m.dtrees, opts, concurrency)
}

func (m *model) inspect() ([]treesas.Stats, error) {
	if m.family == familyGBTree {
		return inspectTrees[gbtree.NodeID](m.forest.Trees)
	}
	return inspectTrees[*dtree.Node](m.dtrees)
}

func inspectTrees[N comparable, T treesas.Tree[N]](trees []T) ([]treesas.Stats, error) {
	stats := make([]treesas.Stats, len(trees))
	for i, t := range trees {
		var err error
		if stats[i], err = treesas.Inspect[N](t); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// render draws tree i. The tree must have been inspected successfully.
func (m *model) render(i int) string {
	title := fmt.Sprintf("tree %d", i)
	if m.family == familyGBTree {
		return renderTree[gbtree.NodeID](m.forest.Trees[i], title)
	}
	return renderTree[*dtree.Node](m.dtrees[i], title)
}

func renderTree[N comparable](t treesas.Tree[N], title string) string {
	root := gotree.New(title)
	var add func(parent gotree.Tree, prefix string, n N)
	add = func(parent gotree.Tree, prefix string, n N) {
		if !t.IsInternal(n) {
			parent.Add(prefix + t.LeafValue(n).String())
			return
		}
		label := fmt.Sprintf("%s %s %s", t.SplitVariable(n), t.DecisionOperator(n),
			treesas.FormatNumber(t.SplitValue(n)))
		branch := false
		switch {
		case t.RoutesMissingLeft(n):
			label += " (missing left)"
		case t.RoutesMissingRight(n):
			label += " (missing right)"
		default:
			branch = true
		}
		node := parent.Add(prefix + label)
		if branch {
			if mn, ok := t.Missing(n); ok {
				add(node, "missing: ", mn)
			}
		}
		add(node, "then: ", t.Left(n))
		add(node, "else: ", t.Right(n))
	}
	add(root, "", t.Root())
	return root.Print()
}
