// SPDX-License-Identifier: MIT

// Package matrix: shape and presence checks shared by every kernel.
// Composite validators run their checks in a fixed order (nil first,
// then shape), so a nil operand always wins over a shape problem.

package matrix

import "fmt"

// shapeErrorf reports two shapes next to the sentinel.
func shapeErrorf(tag string, a, b Matrix, err error) error {
	return fmt.Errorf("%s: %dx%d vs %dx%d: %w", tag, a.Rows(), a.Cols(), b.Rows(), b.Cols(), err)
}

// ValidateNotNil returns ErrNilMatrix for a nil interface or a typed-nil *Dense.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return fmt.Errorf("ValidateNotNil: %w", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return fmt.Errorf("ValidateNotNil: %w", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape returns ErrDimensionMismatch unless a and b have
// equal dimensions. Both must be non-nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return shapeErrorf("ValidateSameShape", a, b, ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare returns ErrNonSquare unless Rows == Cols. m must be non-nil.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return fmt.Errorf("ValidateSquare: %dx%d: %w", m.Rows(), m.Cols(), ErrNonSquare)
	}

	return nil
}

// ValidateBinarySameShape: NotNil(a), NotNil(b), SameShape.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}

	return ValidateSameShape(a, b)
}

// ValidateSquareNonNil: NotNil, Square.
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}

	return ValidateSquare(m)
}

// ValidateMulCompatible requires non-nil operands with a.Cols == b.Rows.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return shapeErrorf("ValidateMulCompatible", a, b, ErrDimensionMismatch)
	}

	return nil
}
