// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import "github.com/cockroachdb/errors"

// DefaultIndentWidth is the number of spaces per nesting level used when
// Options.IndentWidth is not set.
const DefaultIndentWidth = 4

// Options holds the parameters of an Emitter. The zero value is usable once
// EnsureDefaults has been called.
type Options struct {
	// TreeID names the output variable of the emitted tree: leaves assign
	// treeValue<TreeID>. Callers emitting several trees into one program give
	// each a distinct id. The default is 0.
	TreeID int

	// IndentWidth is the number of spaces each nesting level is indented by.
	// Zero or less selects DefaultIndentWidth, so the output is always
	// indented.
	IndentWidth int

	// Logger is used by the logging event listener. The default is
	// DefaultLogger.
	Logger Logger

	// EventListener receives a notification after every emission.
	EventListener EventListener
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. It returns the receiver, or a new
// Options if the receiver is nil.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	o.EventListener.EnsureDefaults()
	return o
}

// Clone creates a shallow copy of the supplied options.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}
	n := *o
	return &n
}

// Validate returns an error if an option is out of range.
func (o *Options) Validate() error {
	if o.TreeID < 0 {
		return errors.Newf("treesas: tree id must not be negative, got %d", o.TreeID)
	}
	if o.IndentWidth < 0 {
		return errors.Newf("treesas: indent width must not be negative, got %d", o.IndentWidth)
	}
	return nil
}
