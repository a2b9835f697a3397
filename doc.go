// SPDX-License-Identifier: MIT

// Package matcalc is a small dense-matrix calculator.
//
// The numeric kernel lives in matrix/: row-major float64 storage with
// element-wise arithmetic, multiplication, transpose, trace, and
// Gaussian elimination with partial pivoting for the determinant and the
// inverse. literal/ reads and writes the inline "1,2;3,4" notation.
//
// Two front ends share one calculator (internal/service):
//
//	cmd/matcalc        cobra CLI, one subcommand per operation
//	matcalc serve      gin HTTP API under /v1/matrix/:op
//
// Quick example:
//
//	$ matcalc -o plain -p 2 inv "4,7;2,6"
//	0.60 -0.70
//	-0.20 0.40
//	det: 10.00
//	residual: ...
//
//	go install github.com/katalvlaran/matcalc/cmd/matcalc@latest
package matcalc
