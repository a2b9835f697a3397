// SPDX-License-Identifier: MIT

// Package matrix - interop with gonum.org/v1/gonum/mat.
// Conversions always copy; neither side ever aliases the other's storage.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToGonum copies m into a new *mat.Dense with the same shape.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	buf, err := denseCopy(m)
	if err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}

	return mat.NewDense(m.Rows(), m.Cols(), buf), nil
}

// FromGonum copies any gonum matrix into a fresh *Dense.
// The numeric policy (opts) applies to every ingested value.
//
// Errors:
//   - ErrNilMatrix for a nil g, ErrInvalidDimensions for an empty shape,
//     ErrNaNInf for non-finite values under the default policy.
func FromGonum(g mat.Matrix, opts ...Option) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	r, c := g.Dims()
	if r <= 0 || c <= 0 {
		return nil, matrixErrorf(opFromGonum, ErrInvalidDimensions)
	}

	o := gatherOptions(opts...)
	d := &Dense{r: r, c: c, data: make([]float64, r*c), validateNaNInf: o.validateNaNInf}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v = g.At(i, j)
			if o.validateNaNInf && isNonFinite(v) {
				return nil, matrixErrorf(opFromGonum, fmt.Errorf("At(%d,%d): %w", i, j, ErrNaNInf))
			}
			d.data[i*c+j] = v
		}
	}

	return d, nil
}
