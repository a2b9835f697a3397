// SPDX-License-Identifier: MIT
package literal_test

import (
	"testing"

	"github.com/katalvlaran/matcalc/literal"
	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want [][]float64
	}{
		{"compact", "1,2;3,4", [][]float64{{1, 2}, {3, 4}}},
		{"spaced", "  2, 1 ,1 ; 1,2,1;1,1,2 ", [][]float64{{2, 1, 1}, {1, 2, 1}, {1, 1, 2}}},
		{"scalar", "7", [][]float64{{7}}},
		{"row vector", "1.5, -2e3, 0", [][]float64{{1.5, -2000, 0}}},
		{"column vector", "1;2;3", [][]float64{{1}, {2}, {3}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := literal.Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, m.ToRows())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		in      string
		wantErr error
		msg     string
	}{
		{"empty", "   ", literal.ErrSyntax, "empty input"},
		{"trailing row sep", "1,2;", literal.ErrSyntax, "row 1"},
		{"empty cell", "1,,2", literal.ErrSyntax, "row 0, col 1"},
		{"not a number", "1,2;3,x", literal.ErrSyntax, `"x"`},
		{"ragged", "1,2;3", matrix.ErrBadShape, "row 1"},
		{"non-finite", "1,NaN", matrix.ErrNaNInf, ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := literal.Parse(tc.in)
			require.ErrorIs(t, err, tc.wantErr)
			require.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	t.Parallel()
	require.NotPanics(t, func() { literal.MustParse("1") })
	require.Panics(t, func() { literal.MustParse("1;") })
}
