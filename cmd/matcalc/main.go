// SPDX-License-Identifier: MIT

// Command matcalc is a dense-matrix calculator: one-shot operations on
// inline matrix literals, or an HTTP JSON service (matcalc serve).
package main

import (
	"os"

	"github.com/katalvlaran/matcalc/cmd/matcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
