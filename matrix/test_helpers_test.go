// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/require"
)

// Tolerances shared across the kernel tests.
const (
	atolTight = 1e-12 // exact-ish small integer inputs
	atolSpec  = 1e-6  // tolerance named by the inverse contract
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their generic At-based fallback path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustFromRows builds a *Dense from a nested literal or fails the test.
func MustFromRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// IdentityDense returns I_n or fails the test.
func IdentityDense(t testing.TB, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandFilledDense fills an r×c matrix with uniform values in [-1, 1)
// from a seeded source.
func RandFilledDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	m := MustDense(t, r, c)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.NoError(t, m.Set(i, j, rng.Float64()*2-1))
		}
	}

	return m
}

// DiagDominantDense returns a random n×n matrix with n added to every
// diagonal entry: strictly diagonally dominant, hence well-conditioned
// and far from singular.
func DiagDominantDense(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	m := RandFilledDense(t, n, n, seed)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, i, MustAt(t, m, i, i)+float64(n)))
	}

	return m
}

// CompareExact asserts every cell of m equals want bit-for-bit.
func CompareExact(t testing.TB, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols of row %d", i)
		for j := range want[i] {
			require.Equal(t, want[i][j], MustAt(t, m, i, j), "cell (%d,%d)", i, j)
		}
	}
}

// CompareClose asserts matrix.AllClose(a, b, rtol, atol).
func CompareClose(t testing.TB, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	require.NoError(t, err)
	require.True(t, ok, "AllClose=false (rtol=%g, atol=%g)\ngot:\n%v\nwant:\n%v", rtol, atol, a, b)
}

// SwapRowsCopy returns a copy of m with rows a and b exchanged.
func SwapRowsCopy(t testing.TB, m *matrix.Dense, a, b int) *matrix.Dense {
	t.Helper()
	rows := m.ToRows()
	rows[a], rows[b] = rows[b], rows[a]

	return MustFromRows(t, rows)
}
