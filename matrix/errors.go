// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an operation
// tag) and callers match them via errors.Is. No kernel panics on a
// user-triggered condition.

package matrix

import (
	"errors"
	"fmt"
)

// ERROR PRIORITY (enforced in tests):
// nil -> shape/index/NaN -> dimension mismatch -> non-square -> singular.

var (
	// ErrBadShape is returned when a literal is not rectangular (ragged rows).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set, tolerances).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is matched by every inversion failure caused by a
	// (near-)zero determinant. The concrete value is a *SingularError.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
)

// SingularError reports a failed inversion together with the determinant
// that triggered it, so callers can show it next to the failure.
//
// errors.Is(err, ErrSingular) holds for any *SingularError.
type SingularError struct {
	Det float64 // determinant computed by Determinant (|Det| < SingularityEpsilon)
}

// Error implements error.
func (e *SingularError) Error() string {
	return fmt.Sprintf("%s (det=%g), has no inverse", ErrSingular.Error(), e.Det)
}

// Is makes errors.Is(err, ErrSingular) succeed.
func (e *SingularError) Is(target error) bool { return target == ErrSingular }
