// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"
)

// Op names a calculator operation.
type Op string

// Supported operations.
const (
	OpAdd       Op = "add"
	OpSub       Op = "sub"
	OpMul       Op = "mul"
	OpScale     Op = "scale"
	OpTranspose Op = "transpose"
	OpTrace     Op = "trace"
	OpIdentity  Op = "identity"
	OpDet       Op = "det"
	OpInv       Op = "inv"
)

// Ops lists every operation in display order.
var Ops = []Op{OpAdd, OpSub, OpMul, OpScale, OpTranspose, OpTrace, OpIdentity, OpDet, OpInv}

var aliases = map[string]Op{
	"subtract":    OpSub,
	"multiply":    OpMul,
	"scalar":      OpScale,
	"determinant": OpDet,
	"inverse":     OpInv,
}

// ParseOp resolves a case-insensitive name or alias.
func ParseOp(name string) (Op, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if Op(n).Known() {
		return Op(n), nil
	}
	if op, ok := aliases[n]; ok {
		return op, nil
	}

	return "", fmt.Errorf("%q: %w", name, ErrUnknownOp)
}

// Operands reports how many matrix operands op consumes (0, 1 or 2).
func (o Op) Operands() int {
	switch o {
	case OpAdd, OpSub, OpMul:
		return 2
	case OpIdentity:
		return 0
	default:
		return 1
	}
}

// Known reports whether o is one of Ops (canonical spelling only).
func (o Op) Known() bool {
	for _, op := range Ops {
		if op == o {
			return true
		}
	}

	return false
}
