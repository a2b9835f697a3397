// SPDX-License-Identifier: MIT

package matrix

// Test bridge: exposes unexported helpers to package matrix_test only.
// Compiled exclusively by `go test` (the _test.go suffix keeps it out of
// production builds).

var (
	// ExportedPivotRow exposes the partial-pivot row search.
	ExportedPivotRow = pivotRow
	// ExportedSwapRows exposes the full-width row swap.
	ExportedSwapRows = swapRows
)
