// SPDX-License-Identifier: MIT

// Command decaychain compiles decay datasets and evolves nuclide inventories.
package main

import (
	"os"

	"github.com/katalvlaran/decaychain/cmd/decaychain/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
