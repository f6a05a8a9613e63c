// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"time"

	"github.com/cockroachdb/redact"
)

// EmitInfo contains the info for a tree emission event.
type EmitInfo struct {
	// TreeID is the id of the emitted tree's output variable.
	TreeID int
	// InternalNodes is the number of split conditions emitted. A subtree that
	// is emitted twice, as when a missing-value branch shares the right child,
	// is counted twice.
	InternalNodes int
	// Leaves is the number of leaf assignments emitted.
	Leaves int
	// MissingBranches is the number of standalone missing-value blocks.
	MissingBranches int
	// MaxDepth is the deepest nesting level reached; a single leaf has depth
	// zero.
	MaxDepth int
	// Bytes is the amount of text written.
	Bytes int64
	// Fingerprint is the xxhash64 of the emitted text. Two emissions with
	// equal fingerprints produced identical scoring code.
	Fingerprint uint64
	// Duration is the time spent emitting.
	Duration time.Duration
	// Err is the error that stopped the emission, if any.
	Err error
}

func (i EmitInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i EmitInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	if i.Err != nil {
		w.Printf("[tree %d] emit error after %d bytes: %s",
			redact.Safe(i.TreeID), redact.Safe(i.Bytes), i.Err)
		return
	}
	w.Printf("[tree %d] emitted %d split nodes, %d leaves, %d missing branches; depth %d; %d bytes; fingerprint %016x; in %.1fs",
		redact.Safe(i.TreeID), redact.Safe(i.InternalNodes), redact.Safe(i.Leaves),
		redact.Safe(i.MissingBranches), redact.Safe(i.MaxDepth), redact.Safe(i.Bytes),
		redact.Safe(i.Fingerprint), redact.Safe(i.Duration.Seconds()))
}

// EventListener contains a set of functions that will be invoked when various
// emission events occur.
type EventListener struct {
	// TreeEmitted is invoked after a tree has been emitted, whether or not the
	// emission succeeded.
	TreeEmitted func(EmitInfo)
}

// EnsureDefaults ensures that the event listener has no nil callbacks.
func (l *EventListener) EnsureDefaults() {
	if l.TreeEmitted == nil {
		l.TreeEmitted = func(EmitInfo) {}
	}
}

// MakeLoggingEventListener creates an EventListener that logs all events to
// the specified logger. Failed emissions are logged with Errorf.
func MakeLoggingEventListener(logger Logger) EventListener {
	if logger == nil {
		logger = DefaultLogger{}
	}
	return EventListener{
		TreeEmitted: func(info EmitInfo) {
			if info.Err != nil {
				logger.Errorf("%s", info)
				return
			}
			logger.Infof("%s", info)
		},
	}
}

// TeeEventListener wraps two EventListeners, forwarding all events to both.
func TeeEventListener(a, b EventListener) EventListener {
	a.EnsureDefaults()
	b.EnsureDefaults()
	return EventListener{
		TreeEmitted: func(info EmitInfo) {
			a.TreeEmitted(info)
			b.TreeEmitted(info)
		},
	}
}
