// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package tool implements the treesas command line tools: emitting scoring
// code for tree files, describing them and reformatting them.
package tool

import (
	"github.com/cockroachdb/treesas"
	"github.com/spf13/cobra"
)

// T is the container for all of the tree tools.
type T struct {
	Commands []*cobra.Command
	model    *modelT
	logger   treesas.Logger
}

// Option is a functional option for New.
type Option func(*T)

// WithLogger sets the logger used for verbose event logging. The default is
// treesas.DefaultLogger.
func WithLogger(logger treesas.Logger) Option {
	return func(t *T) {
		t.logger = logger
	}
}

// New creates a new tree tool.
func New(opts ...Option) *T {
	t := &T{logger: treesas.DefaultLogger{}}
	for _, opt := range opts {
		opt(t)
	}
	t.model = newModel(t.logger)
	t.Commands = []*cobra.Command{
		t.model.Emit,
		t.model.Describe,
		t.model.Fmt,
	}
	return t
}
