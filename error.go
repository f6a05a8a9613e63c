// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

// ErrContractViolation marks errors caused by a tree that does not satisfy
// the Tree contract, e.g. a split node without a usable child. Use errors.Is
// to test for it.
var ErrContractViolation = errors.New("treesas: tree contract violation")

// ContractViolationf returns an assertion failure marked with
// ErrContractViolation. Tree families panic with such errors when asked about
// a malformed node; the Emitter recovers them and returns them to its caller.
func ContractViolationf(format string, args ...interface{}) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), ErrContractViolation)
}

// recoverContractViolation converts an error panic raised by a tree family
// into an error marked with ErrContractViolation and stores it in *err.
// Runtime errors and panics with non-error values are re-raised. It must be
// called directly by a deferred function.
func recoverContractViolation(err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok {
		panic(r)
	}
	var re runtime.Error
	if errors.As(e, &re) {
		panic(r)
	}
	if !errors.Is(e, ErrContractViolation) {
		e = errors.Mark(e, ErrContractViolation)
	}
	*err = e
}
