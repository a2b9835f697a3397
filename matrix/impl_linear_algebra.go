// SPDX-License-Identifier: MIT

// Package matrix: arithmetic kernels (Add, Sub, Mul, Transpose, Scale,
// Trace) and the op tags shared with the elimination kernels in
// impl_gauss.go.
//
// Each kernel validates first, reads its operands through flatView (the
// *Dense buffer itself, or one At pass for other implementations) and
// writes into a freshly allocated *Dense. Operands are never mutated.

package matrix

import "fmt"

// ZeroSum is the initial accumulator for Mul and Trace.
const ZeroSum = 0.0

// ZeroPivot is the exact value Determinant treats as a singular pivot.
const ZeroPivot = 0.0

// Op tags prefixed to wrapped errors.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opTrace       = "Trace"
	opIdentity    = "Identity"
	opDeterminant = "Determinant"
	opInverse     = "Inverse"
	opResidual    = "Residual"
	opAllClose    = "AllClose"
	opToGonum     = "ToGonum"
	opFromGonum   = "FromGonum"
)

// matrixErrorf prefixes err with an op tag. err must be non-nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes out[i,j] = a[i,j] + sign*b[i,j], sign ∈ {+1, -1}.
func addSub(a, b Matrix, sign float64, tag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	av, err := flatView(a)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	bv, err := flatView(b)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	res, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	for idx := range res.data {
		res.data[idx] = av[idx] + sign*bv[idx]
	}

	return res, nil
}

// Add returns the element-wise sum A + B.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub returns the element-wise difference A - B.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul returns the product A × B (rows(A) × cols(B)).
//
// The loop is the plain i→j→k triple loop with every term accumulated:
// there is no zero skipping, so 0·Inf yields NaN as the definition says,
// and no blocking or Strassen split.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (A.Cols != B.Rows).
//
// Complexity: O(r*n*c) time, O(r*c) space.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	av, err := flatView(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bv, err := flatView(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k int
		rowA    []float64
		acc     float64
	)
	for i = 0; i < rows; i++ {
		rowA = av[i*inner : (i+1)*inner]
		for j = 0; j < cols; j++ {
			acc = ZeroSum
			for k = 0; k < inner; k++ {
				acc += rowA[k] * bv[k*cols+j]
			}
			res.data[i*cols+j] = acc
		}
	}

	return res, nil
}

// Transpose returns mᵀ.
// Errors: ErrNilMatrix.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := flatView(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = src[i*cols+j]
		}
	}

	return res, nil
}

// Scale returns alpha·m. A zero alpha yields a zero matrix of the same
// shape; NaN or Inf alpha propagate per IEEE-754.
// Errors: ErrNilMatrix.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	src, err := flatView(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	res, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range src {
		res.data[idx] = v * alpha
	}

	return res, nil
}

// Trace returns Σ_i m[i,i], summed in increasing i.
// Errors: ErrNilMatrix, ErrNonSquare.
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}

	n := m.Rows()
	sum := ZeroSum
	if dm, ok := m.(*Dense); ok {
		for i := 0; i < n; i++ {
			sum += dm.data[i*n+i]
		}

		return sum, nil
	}
	for i := 0; i < n; i++ {
		v, err := m.At(i, i)
		if err != nil {
			return 0, matrixErrorf(opTrace, fmt.Errorf("At(%d,%d): %w", i, i, err))
		}
		sum += v
	}

	return sum, nil
}
