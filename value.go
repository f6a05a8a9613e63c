// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"math"
	"strconv"
)

// Value is the value assigned by a leaf: either a number or a SAS expression
// that is written verbatim.
type Value struct {
	num    float64
	expr   string
	isExpr bool
}

// Number returns a numeric leaf value.
func Number(v float64) Value {
	return Value{num: v}
}

// Expr returns a leaf value holding a SAS expression, e.g. "1 / (1 + exp(-x))".
func Expr(s string) Value {
	return Value{expr: s, isExpr: true}
}

// IsExpr returns true if the value is an expression.
func (v Value) IsExpr() bool { return v.isExpr }

// Float returns the numeric value. It is zero for expressions.
func (v Value) Float() float64 { return v.num }

// String implements fmt.Stringer, returning the value as it is emitted.
func (v Value) String() string {
	if v.isExpr {
		return v.expr
	}
	return FormatNumber(v.num)
}

// FormatNumber formats a number as a SAS numeric constant using the shortest
// representation that round-trips. NaN is formatted as the SAS missing value
// and infinities as the largest representable double.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "."
	case math.IsInf(f, 1):
		return "constant('BIG')"
	case math.IsInf(f, -1):
		return "-constant('BIG')"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
