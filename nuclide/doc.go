// SPDX-License-Identifier: MIT

// Package nuclide parses and canonicalises nuclide identifiers.
//
// A nuclide is (Z, A, state). It has two canonical forms:
//
//	name  "Tc-99m"      element symbol, hyphen, mass number, state letter
//	id    430990001     Z·10000000 + A·10000 + state
//
// Parse accepts the usual alternative spellings ("Tc99m", "99mTc", "99m-Tc")
// and always returns the canonical form. A Ref carries either a name or an id
// and is resolved against a dataset Index once, at the API boundary.
package nuclide
