// SPDX-License-Identifier: MIT

package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/matcalc/matrix"
)

// Separators of the inline form.
const (
	RowSep  = ";"
	CellSep = ","
)

// ErrSyntax is returned for input that is not a matrix literal at all:
// empty text, an empty row or cell, or a cell that is not a number.
var ErrSyntax = errors.New("literal: invalid matrix syntax")

// syntaxErrorf pins a failure to a 0-based (row, col) cell.
func syntaxErrorf(row, col int, format string, args ...any) error {
	return fmt.Errorf("row %d, col %d: %s: %w", row, col, fmt.Sprintf(format, args...), ErrSyntax)
}

// Parse converts s into a fresh *matrix.Dense.
//
// Errors:
//   - ErrSyntax for empty input, empty rows/cells or unparsable numbers.
//   - matrix.ErrBadShape when rows have different lengths.
//   - matrix.ErrNaNInf for "NaN"/"Inf" cells.
func Parse(s string) (*matrix.Dense, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty input: %w", ErrSyntax)
	}

	lines := strings.Split(s, RowSep)
	rows := make([][]float64, len(lines))
	var (
		i, j  int
		cells []string
		cell  string
		v     float64
		err   error
	)
	for i = range lines {
		if strings.TrimSpace(lines[i]) == "" {
			return nil, fmt.Errorf("row %d: empty row: %w", i, ErrSyntax)
		}
		cells = strings.Split(lines[i], CellSep)
		rows[i] = make([]float64, len(cells))
		for j = range cells {
			cell = strings.TrimSpace(cells[j])
			if cell == "" {
				return nil, syntaxErrorf(i, j, "empty value")
			}
			if v, err = strconv.ParseFloat(cell, 64); err != nil {
				return nil, syntaxErrorf(i, j, "%q is not a number", cell)
			}
			rows[i][j] = v
		}
	}

	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("literal: %w", err)
	}

	return m, nil
}

// MustParse is Parse for trusted literals; it panics on error.
func MustParse(s string) *matrix.Dense {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return m
}
