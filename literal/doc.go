// SPDX-License-Identifier: MIT

// Package literal reads and writes matrices in the compact inline form
// "1, 2, 3; 4, 5, 6": rows separated by ';', values by ','.
//
// Parse is the single entry point for user-typed matrices (CLI arguments,
// HTTP request bodies). It trims whitespace around every cell, rejects
// empty cells and non-numbers with ErrSyntax, and leaves rectangularity
// and the finite-value policy to matrix.NewDenseFromRows, so a ragged
// literal fails with matrix.ErrBadShape.
//
// Format and Rows render a matrix back with a fixed number of decimals.
package literal
