// SPDX-License-Identifier: MIT

// Package matrix is a small dense linear-algebra kernel over float64.
//
// The matrix package provides:
//
//   - Dense, a row-major Matrix with bounds-checked At/Set and a checked
//     nested-slice constructor (NewDenseFromRows) that rejects ragged input.
//   - Arithmetic: Add, Sub, Mul, Scale, Transpose, Trace, NewIdentity.
//   - Determinant by Gaussian elimination with partial pivoting.
//   - Inverse by Gauss-Jordan elimination on the augmented matrix [A | I].
//   - Helpers for verification (AllClose, Residual) and gonum interop.
//
// Every function is pure: operands are read, never written, and results
// are freshly allocated. There is no package-level mutable state, so
// concurrent calls on independent (or shared, read-only) inputs are safe.
//
// Failures are reported through sentinel errors (ErrDimensionMismatch,
// ErrNonSquare, ErrSingular, ErrInvalidDimensions, ...) matched with
// errors.Is. A failed inversion is a *SingularError carrying the
// determinant that caused it.
package matrix
