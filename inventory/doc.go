// SPDX-License-Identifier: MIT

// Package inventory holds activities of radionuclides against one decay
// dataset and evolves them through time.
//
// An Inventory is an immutable value object: Add, Subtract, Multiply,
// Divide, Remove, Decay and DecayExact all return a new Inventory and leave
// the receiver untouched, so inventories may be shared between goroutines.
// Several inventories may hold the same *dataset.Dataset; there is no
// package-level default dataset.
//
// Keys are resolved exactly once, at construction, through nuclide.Ref:
//
//	inv, err := inventory.New(ds, map[nuclide.Ref]numeric.Value{
//		nuclide.Name("H3"):      numeric.Fixed(10),
//		nuclide.Name("99mTc"):   numeric.Fixed(2.3),
//	})
//	later, err := inv.Decay(numeric.Fixed(20), "h")
//
// Values keep their representation: exact inputs stay exact through
// arithmetic and DecayExact, fixed inputs stay float64.
package inventory
