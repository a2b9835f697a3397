// SPDX-License-Identifier: MIT
package matrix_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/require"
)

// TestConcurrentReadersShareOperand runs every read-only kernel on one
// shared operand from many goroutines; run with -race.
func TestConcurrentReadersShareOperand(t *testing.T) {
	t.Parallel()
	a := DiagDominantDense(t, 6, 77)
	snap := a.ToRows()
	wantDet, err := matrix.Determinant(a)
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	dets := make([]float64, workers)
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			if _, err := matrix.Inverse(a); err != nil {
				errs[w] = err
				return
			}
			if _, err := matrix.Mul(a, a); err != nil {
				errs[w] = err
				return
			}
			dets[w], errs[w] = matrix.Determinant(a)
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		require.Equal(t, wantDet, dets[w], "deterministic across goroutines")
	}
	CompareExact(t, snap, a)
}
