// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"
	"math/big"
	"sort"
	"sync"
)

// Graph is a thread-safe directed decay graph.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]*node
}

type node struct {
	radioactive bool
	out         []Decay // insertion order
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNuclide adds a vertex. Stable nuclides cannot be given decays.
func (g *Graph) AddNuclide(name string, radioactive bool) error {
	if name == "" {
		return ErrEmptyName
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNuclide, name)
	}
	g.nodes[name] = &node{radioactive: radioactive}

	return nil
}

// AddDecay adds the edge from → to with the given branching fraction.
// Both nuclides must already exist and from must be radioactive.
func (g *Graph) AddDecay(from, to string, fraction *big.Rat, mode string) error {
	if fraction == nil || fraction.Sign() < 0 || fraction.Cmp(big.NewRat(1, 1)) > 0 {
		return fmt.Errorf("%w: %s → %s", ErrInvalidFraction, from, to)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	parent, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNuclide, from)
	}
	if _, ok = g.nodes[to]; !ok {
		return fmt.Errorf("%w: %s (progeny of %s)", ErrUnknownNuclide, to, from)
	}
	if !parent.radioactive {
		return fmt.Errorf("%w: %s", ErrStableParent, from)
	}
	for _, d := range parent.out {
		if d.To == to {
			return fmt.Errorf("%w: %s → %s", ErrDuplicateDecay, from, to)
		}
	}
	parent.out = append(parent.out, Decay{From: from, To: to, Fraction: new(big.Rat).Set(fraction), Mode: mode})

	return nil
}

// Len returns the number of nuclides.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// Nuclides returns all nuclide names in ascending order.
func (g *Graph) Nuclides() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.sortedLocked()
}

func (g *Graph) sortedLocked() []string {
	out := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Radioactive reports whether name decays.
func (g *Graph) Radioactive(name string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownNuclide, name)
	}

	return n.radioactive, nil
}

// Progeny returns the decays of name in insertion order. Fractions are copies.
func (g *Graph) Progeny(name string) ([]Decay, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNuclide, name)
	}
	out := make([]Decay, len(n.out))
	for i, d := range n.out {
		d.Fraction = new(big.Rat).Set(d.Fraction)
		out[i] = d
	}

	return out, nil
}

// Descendants returns every nuclide reachable from name (excluding name)
// in breadth-first discovery order.
//
// Complexity: O(V + E).
func (g *Graph) Descendants(name string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.nodes[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNuclide, name)
	}

	var (
		seen  = map[string]bool{name: true}
		queue = []string{name}
		out   []string
	)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range g.nodes[cur].out {
			if seen[d.To] {
				continue
			}
			seen[d.To] = true
			out = append(out, d.To)
			queue = append(queue, d.To)
		}
	}

	return out, nil
}

// ValidateBranching checks that every radioactive nuclide has progeny whose
// branching fractions sum to 1 within tol.
//
// Complexity: O(V log V + E).
func (g *Graph) ValidateBranching(tol *big.Rat) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var (
		one  = big.NewRat(1, 1)
		sum  = new(big.Rat)
		diff = new(big.Rat)
	)
	for _, name := range g.sortedLocked() {
		n := g.nodes[name]
		if !n.radioactive {
			continue
		}
		sum.SetInt64(0)
		for _, d := range n.out {
			sum.Add(sum, d.Fraction)
		}
		diff.Sub(sum, one)
		if diff.Abs(diff).Cmp(tol) > 0 {
			return fmt.Errorf("%w: %s sums to %s", ErrBranchingSum, name, sum.FloatString(9))
		}
	}

	return nil
}
