// SPDX-License-Identifier: MIT

// Package decaychain evolves inventories of radionuclides through their decay
// chains using the closed-form Bateman solution.
//
// 🚀 What is decaychain?
//
//	An analytic decay engine built around a precompiled Decay Dataset:
//		• Dataset: decay constants λ plus the sparse eigenvector matrices C and C⁻¹
//		• Evolve: N(t) = C·diag(e^(−λt))·C⁻¹·N(0) in float64
//		• EvolveExact: the same solution in exact rationals, rounded to n significant figures
//		• Inventory: immutable nuclide → activity maps with arithmetic, unit views and decay
//
// Under the hood, everything is organized under these subpackages:
//
//	numeric/    exact/fixed values, 2^(−x) in arbitrary precision, significant-figure rounding
//	nuclide/    nuclide names, canonical forms and integer IDs
//	units/      time, activity, mass and moles conversions
//	matrix/     sparse CSC/CSR matrices in float64 and big.Rat
//	chain/      decay graph, topological order, reachability
//	dataset/    YAML sources, compilation, bundle codec, Save/Load
//	store/      bundle storage on filesystem, memory, S3 or SQL
//	engine/     Evolve and EvolveExact with metrics
//	inventory/  Inventory type and its operations
//	config/     TOML + environment configuration
//	server/     HTTP decay API
//
// Quick example:
//
//	ds, _ := dataset.Load(ctx, st, "icrp-107")
//	inv, _ := inventory.FromActivities(ds, map[string]float64{"Tc-99m": 2.3, "I-123": 5.8})
//	later, _ := inv.Decay(numeric.Fixed(20), "h")
//	fmt.Println(later)
//
// The decaychain command (cmd/decaychain) wraps the same operations.
package decaychain
