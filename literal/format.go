// SPDX-License-Identifier: MIT

package literal

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/matcalc/matrix"
)

// DefaultPrecision is the number of decimals used when precision < 0.
const DefaultPrecision = 4

// FormatValue renders v with a fixed number of decimals, normalising -0
// to 0 so that rounded results never print as "-0.0000".
func FormatValue(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.TrimLeft(s, "-0.") == "" {
		s = strings.TrimPrefix(s, "-")
	}

	return s
}

// Rows renders every cell of m as a fixed-decimal string.
// Cells that cannot be read are rendered as "?".
func Rows(m matrix.Matrix, precision int) [][]string {
	if matrix.ValidateNotNil(m) != nil {
		return nil
	}
	r, c := m.Rows(), m.Cols()
	out := make([][]string, r)
	for i := 0; i < r; i++ {
		out[i] = make([]string, c)
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				out[i][j] = "?"
				continue
			}
			out[i][j] = FormatValue(v, precision)
		}
	}

	return out
}

// Format renders m in the inline form accepted by Parse, e.g.
// "1.00, 2.00; 3.00, 4.00". A nil matrix renders as "".
func Format(m matrix.Matrix, precision int) string {
	rows := Rows(m, precision)
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, CellSep+" ")
	}

	return strings.Join(lines, RowSep+" ")
}
