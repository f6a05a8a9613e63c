// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

// Operator is the comparison of a split condition.
type Operator uint8

// The comparisons supported by the SAS scoring language.
const (
	OpInvalid Operator = iota
	OpLT
	OpLE
	OpGT
	OpGE
	OpEQ
)

var operatorStrings = [...]string{
	OpInvalid: "invalid",
	OpLT:      "<",
	OpLE:      "<=",
	OpGT:      ">",
	OpGE:      ">=",
	OpEQ:      "=",
}

// String implements fmt.Stringer. The result is the operator as written in
// SAS.
func (o Operator) String() string {
	if int(o) < len(operatorStrings) {
		return operatorStrings[o]
	}
	return operatorStrings[OpInvalid]
}

// Valid returns true if o is one of the supported comparisons.
func (o Operator) Valid() bool {
	return o > OpInvalid && o <= OpEQ
}

// ParseOperator parses the textual form of an operator. Both "=" and "==" are
// accepted for equality.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "<":
		return OpLT, true
	case "<=":
		return OpLE, true
	case ">":
		return OpGT, true
	case ">=":
		return OpGE, true
	case "=", "==":
		return OpEQ, true
	}
	return OpInvalid, false
}
