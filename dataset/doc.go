// SPDX-License-Identifier: MIT

// Package dataset holds the immutable Decay Dataset: nuclide names and
// decay constants, the progeny map, the year length, and the precomputed
// eigenvector matrices C and C⁻¹ with which
//
//	N(t) = C · diag(exp(−λt)) · C⁻¹ · N(0)
//
// solves the decay equations in closed form.
//
// A Dataset is produced three ways:
//   - New validates hand-assembled Parts.
//   - Compile derives C and C⁻¹ exactly from a YAML Source.
//   - Load reads a bundle previously written by Save from a store.Store.
//
// The exact counterpart (Exact) keeps rates r = 1/T½ and both matrices as
// rationals; the arbitrary-precision engine requires it.
package dataset
