// SPDX-License-Identifier: MIT

// Package matrix provides sparse matrix storage and the linear-algebra
// kernels used by the decay engine.
//
// 🚀 What is inside?
//
//	CSC      compressed sparse column, float64      (eigenvector matrices C, C⁻¹)
//	CSR      compressed sparse row, float64         (row-block parallel products)
//	RatCSC   compressed sparse column, *big.Rat     (exact C, C⁻¹)
//
// Kernels:
//
//	MulVec(m, x)               y = m·x, scattering nonzero x[j] only
//	MulVecParallel(ctx, m, x)  y = m·x over contiguous row blocks (errgroup)
//	RatMulVec(m, x)            exact y = m·x
//	InverseUnitLower(L)        L⁻¹ by forward substitution
//	RatInverseUnitLower(L)     exact L⁻¹
//
// ✨ Guarantees
//
//   - Immutable after construction; accessors return copies.
//   - Deterministic: fixed loop orders, no map iteration in numeric paths.
//   - Safe surface: user errors are returned as sentinel errors, never panics.
//
// Quick example:
//
//	l, _ := matrix.NewCSCFromTriplets(2, 2, []matrix.Triplet{
//		{Row: 0, Col: 0, Value: 1},
//		{Row: 1, Col: 0, Value: -1},
//		{Row: 1, Col: 1, Value: 1},
//	})
//	inv, _ := matrix.InverseUnitLower(l) // [[1 0] [1 1]]
package matrix
