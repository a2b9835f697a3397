// SPDX-License-Identifier: MIT
// Package matrix: constructors and comparisons built on the kernels.

package matrix

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// n < 1 fails with ErrInvalidDimensions.
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// AllClose reports whether |a[i,j]-b[i,j]| ≤ atol + rtol*|b[i,j]| for every cell.
// Shapes must match; tolerances must be finite (negative values are abs-ed).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
