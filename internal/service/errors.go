// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"

	"github.com/katalvlaran/matcalc/literal"
	"github.com/katalvlaran/matcalc/matrix"
)

var (
	// ErrUnknownOp is returned for an operation name the calculator lacks.
	ErrUnknownOp = errors.New("service: unknown operation")

	// ErrMissingOperand is returned when a required operand is absent.
	ErrMissingOperand = errors.New("service: missing operand")

	// ErrTooLarge is returned when an operand exceeds Limits.MaxDim.
	ErrTooLarge = errors.New("service: matrix exceeds size limit")

	// ErrOverflow is returned when finite operands produce a NaN or ±Inf
	// result, e.g. a determinant beyond the float64 range.
	ErrOverflow = errors.New("service: result is not finite")
)

// Error kinds, used as metric labels and for HTTP status mapping.
const (
	KindSyntax      = "syntax"
	KindShape       = "shape"
	KindDimension   = "dimension"
	KindNonSquare   = "non_square"
	KindSingular    = "singular"
	KindInvalidSize = "invalid_size"
	KindTooLarge    = "too_large"
	KindUnknownOp   = "unknown_op"
	KindMissing     = "missing_operand"
	KindOverflow    = "overflow"
	KindCanceled    = "canceled"
	KindInternal    = "internal"
)

// ErrorKind classifies err into one of the Kind* constants; nil → "".
// Order matters only for errors that wrap several sentinels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, literal.ErrSyntax):
		return KindSyntax
	case errors.Is(err, matrix.ErrBadShape), errors.Is(err, matrix.ErrNaNInf):
		return KindShape
	case errors.Is(err, matrix.ErrDimensionMismatch):
		return KindDimension
	case errors.Is(err, matrix.ErrNonSquare):
		return KindNonSquare
	case errors.Is(err, matrix.ErrSingular):
		return KindSingular
	case errors.Is(err, matrix.ErrInvalidDimensions):
		return KindInvalidSize
	case errors.Is(err, ErrTooLarge):
		return KindTooLarge
	case errors.Is(err, ErrUnknownOp):
		return KindUnknownOp
	case errors.Is(err, ErrMissingOperand):
		return KindMissing
	case errors.Is(err, ErrOverflow):
		return KindOverflow
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}
