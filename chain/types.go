// SPDX-License-Identifier: MIT

// Package chain defines the decay graph: nuclides as vertices and decays as
// directed parent → progeny edges weighted by branching fraction.
//
// The graph is only used while a dataset is compiled and for descriptive
// queries; decay evolution itself never traverses it.
package chain

import (
	"context"
	"errors"
	"math/big"
)

// Visitation states used by TopologicalSort.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is in the recursion stack (visiting).
	Black        // Black: the vertex and all its descendants have been fully explored.
)

var (
	// ErrEmptyName is returned for an empty nuclide name.
	ErrEmptyName = errors.New("chain: empty nuclide name")

	// ErrDuplicateNuclide is returned when a nuclide is added twice.
	ErrDuplicateNuclide = errors.New("chain: duplicate nuclide")

	// ErrUnknownNuclide indicates that a referenced nuclide is not in the graph.
	ErrUnknownNuclide = errors.New("chain: unknown nuclide")

	// ErrDuplicateDecay is returned when the same parent → progeny decay is added twice.
	ErrDuplicateDecay = errors.New("chain: duplicate decay")

	// ErrInvalidFraction is returned for a branching fraction outside [0, 1].
	ErrInvalidFraction = errors.New("chain: branching fraction outside [0, 1]")

	// ErrStableParent is returned when a decay is added to a stable nuclide.
	ErrStableParent = errors.New("chain: stable nuclide cannot decay")

	// ErrBranchingSum is returned when the branching fractions of a
	// radioactive nuclide do not sum to 1 within tolerance.
	ErrBranchingSum = errors.New("chain: branching fractions do not sum to 1")

	// ErrCycleDetected indicates that a decay cycle was encountered during
	// TopologicalSort.
	ErrCycleDetected = errors.New("chain: cycle detected")
)

// Decay is one parent → progeny edge.
type Decay struct {
	From     string
	To       string
	Fraction *big.Rat // exact branching fraction in [0, 1]
	Mode     string   // e.g. "β-", "α", "IT", "EC"
}

// FractionFloat returns the branching fraction as a float64.
func (d Decay) FractionFloat() float64 {
	f, _ := d.Fraction.Float64()

	return f
}

// Option configures TopologicalSort.
type Option func(*options)

type options struct {
	ctx context.Context // allows cancellation; defaults to Background
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithCancelContext sets the cancellation context.
// Passing a nil context has no effect.
func WithCancelContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
