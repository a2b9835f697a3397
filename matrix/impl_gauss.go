// SPDX-License-Identifier: MIT

// Package matrix - Gaussian elimination kernels (Determinant, Inverse).
//
// Purpose:
//   - Determinant via forward elimination with partial pivoting.
//   - Inverse via Gauss-Jordan elimination on the augmented matrix [A | I].
//
// Determinism:
//   - Pivot search scans rows i..n-1 top-down and only moves on a strictly
//     larger |value|, so ties resolve to the lowest row index.
//
// Singularity:
//   - Determinant short-circuits to 0 only when a pivot is exactly ZeroPivot.
//   - Inverse refuses when |det| < SingularityEpsilon.
//   - A determinant in (0, SingularityEpsilon) is returned by Determinant
//     yet rejected by Inverse.
//
// Ownership:
//   - Both kernels eliminate on a private flat buffer; the caller's matrix
//     is read once and never written.

package matrix

import "math"

// pivotRow returns the row in [from, n) with the largest |w[row, col]|.
// The first maximum wins (strict >), giving the lowest-index tie-break.
// w is a row-major buffer with the given stride.
func pivotRow(w []float64, stride, n, from, col int) int {
	best := from
	bestAbs := math.Abs(w[from*stride+col])
	for k := from + 1; k < n; k++ {
		if v := math.Abs(w[k*stride+col]); v > bestAbs {
			best, bestAbs = k, v
		}
	}

	return best
}

// swapRows exchanges rows a and b across the full stride of w.
func swapRows(w []float64, stride, a, b int) {
	ra := w[a*stride : (a+1)*stride]
	rb := w[b*stride : (b+1)*stride]
	for j := 0; j < stride; j++ {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

// Determinant computes det(m) by Gaussian elimination with partial pivoting.
// MAIN DESCRIPTION:
//   - Reduce a private copy of m to upper-triangular form, tracking the
//     sign of every row swap, then multiply the diagonal.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m); copy m into a flat n×n buffer w; det = 1.
//   - Stage 2: for i = 0..n-1:
//     a. maxRow = pivotRow(w, i..n-1, col i);
//     b. if maxRow != i swap rows i and maxRow and negate det;
//     c. if w[i,i] == 0 exactly, return 0 immediately;
//     d. for k > i: factor = w[k,i]/w[i,i]; w[k,j] -= factor*w[i,j] for j = i..n-1.
//   - Stage 3: det *= w[i,i] for i = 0..n-1 (in that order) and return det.
//
// Behavior highlights:
//   - The zero check is an equality test, not a tolerance: near-singular
//     input yields whatever tiny value rounding leaves behind.
//   - Columns left of i are already zero and are not touched.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n^3), Space O(n^2) for the working copy.
func Determinant(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}

	n := m.Rows()
	w, err := denseCopy(m)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}

	det := 1.0
	var (
		i, j, k, maxRow int
		pivot, factor   float64
		rowI, rowK      []float64
	)
	for i = 0; i < n; i++ {
		maxRow = pivotRow(w, n, n, i, i)
		if maxRow != i {
			swapRows(w, n, i, maxRow)
			det = -det // a row swap flips the sign
		}

		pivot = w[i*n+i]
		if pivot == ZeroPivot {
			return 0, nil
		}

		rowI = w[i*n : (i+1)*n]
		for k = i + 1; k < n; k++ {
			rowK = w[k*n : (k+1)*n]
			factor = rowK[i] / pivot
			for j = i; j < n; j++ {
				rowK[j] -= factor * rowI[j]
			}
		}
	}

	for i = 0; i < n; i++ {
		det *= w[i*n+i]
	}

	return det, nil
}

// Inverse computes A⁻¹ by Gauss-Jordan elimination on [A | I].
// MAIN DESCRIPTION:
//   - Refuse (near-)singular input up front using Determinant, then drive
//     the augmented n×2n matrix to [I | A⁻¹] and return the right block.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m); det = Determinant(m);
//     |det| < SingularityEpsilon → *SingularError{Det: det}.
//   - Stage 2: build aug = [A | I] as a flat n×2n buffer.
//   - Stage 3 (forward): for i = 0..n-1: partial pivot (same rule as
//     Determinant) with full-width swaps; divide row i by aug[i,i] across
//     all 2n columns; for k > i subtract aug[k,i]·row i.
//   - Stage 4 (backward): for i = n-1..0, for k < i subtract aug[k,i]·row i.
//   - Stage 5: copy columns n..2n-1 into a fresh n×n Dense.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (*SingularError carries Det).
//
// Determinism:
//   - Fixed loop orders; lowest-index pivot tie-break.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - A pivot that still comes out exactly zero after the determinant gate
//     is reported as *SingularError too.
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	det, err := Determinant(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if math.Abs(det) < SingularityEpsilon {
		return nil, matrixErrorf(opInverse, &SingularError{Det: det})
	}

	n := m.Rows()
	src, err := denseCopy(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	// Augmented [A | I], stride 2n.
	stride := 2 * n
	aug := make([]float64, n*stride)
	var i, j, k int
	for i = 0; i < n; i++ {
		copy(aug[i*stride:i*stride+n], src[i*n:(i+1)*n])
		aug[i*stride+n+i] = 1.0
	}

	var (
		maxRow        int
		pivot, factor float64
		rowI, rowK    []float64
	)

	// Forward elimination.
	for i = 0; i < n; i++ {
		maxRow = pivotRow(aug, stride, n, i, i)
		if maxRow != i {
			swapRows(aug, stride, i, maxRow)
		}

		rowI = aug[i*stride : (i+1)*stride]
		pivot = rowI[i]
		if pivot == ZeroPivot {
			return nil, matrixErrorf(opInverse, &SingularError{Det: det})
		}
		for j = 0; j < stride; j++ {
			rowI[j] /= pivot
		}

		for k = i + 1; k < n; k++ {
			rowK = aug[k*stride : (k+1)*stride]
			factor = rowK[i]
			for j = 0; j < stride; j++ {
				rowK[j] -= factor * rowI[j]
			}
		}
	}

	// Backward elimination: clear above each pivot.
	for i = n - 1; i >= 0; i-- {
		rowI = aug[i*stride : (i+1)*stride]
		for k = i - 1; k >= 0; k-- {
			rowK = aug[k*stride : (k+1)*stride]
			factor = rowK[i]
			for j = 0; j < stride; j++ {
				rowK[j] -= factor * rowI[j]
			}
		}
	}

	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	for i = 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], aug[i*stride+n:(i+1)*stride])
	}

	return inv, nil
}

// Residual returns max_{i,j} |(a·inv − I)[i,j]|, the worst deviation of
// the product from the identity. Used to verify an inverse.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != inv.Rows),
//     ErrNonSquare (product not square).
func Residual(a, inv Matrix) (float64, error) {
	p, err := Mul(a, inv)
	if err != nil {
		return 0, matrixErrorf(opResidual, err)
	}
	if err = ValidateSquare(p); err != nil {
		return 0, matrixErrorf(opResidual, err)
	}

	pd := p.(*Dense) // Mul always returns *Dense
	n := pd.r
	worst := 0.0
	var want, d float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want = 0
			if i == j {
				want = 1
			}
			d = math.Abs(pd.data[i*n+j] - want)
			if d > worst || math.IsNaN(d) {
				worst = d
			}
		}
	}

	return worst, nil
}
