// SPDX-License-Identifier: MIT

// Package engine evolves nuclide quantities through radioactive decay using
// the analytic Bateman solution precomputed in a dataset.Dataset.
//
// For decay constants λ and the eigenvector matrix C of the decay operator,
// the atom counts after t seconds are
//
//	n(t) = C · diag(e^(−λt)) · C⁻¹ · n(0)
//
// and activities are A = λ·n. The engine performs only sparse linear algebra;
// the chain topology is already baked into C and C⁻¹.
//
// Two arithmetic modes are provided:
//
//   - Evolve and EvolveNumbers work in float64. Exponentials that underflow
//     saturate to zero; a backwards step that overflows fails with
//     ErrExponentOverflow. WithWorkers parallelises the two products.
//   - EvolveExact works in math/big rationals and returns activities rounded
//     to a requested number of significant figures. Cancelling terms are
//     merged exactly before any rounding happens.
//
// Quantities are keyed by dataset index; nuclide.Resolve maps names to
// indices at the API boundary. Every result covers exactly the nuclides
// reachable from the seeds, stable end products included with activity 0.
//
// WithMetrics attaches prometheus counters and histograms.
package engine
