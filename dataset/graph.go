// SPDX-License-Identifier: MIT

package dataset

import (
	"github.com/katalvlaran/decaychain/chain"
	"github.com/katalvlaran/decaychain/numeric"
)

// Graph rebuilds the decay graph from the progeny lists. It serves chain
// queries (descendants, ordering); evolution never walks it.
//
// Complexity: O(V + E).
func (d *Dataset) Graph() (*chain.Graph, error) {
	g := chain.NewGraph()
	var i int
	for i = range d.names {
		if err := g.AddNuclide(d.names[i], d.lambda[i] > 0); err != nil {
			return nil, loadErrorf("Graph", err)
		}
	}
	for i = range d.progeny {
		for _, b := range d.progeny[i] {
			fraction, err := numeric.RatFromFloat(b.Fraction)
			if err != nil {
				return nil, loadErrorf("Graph", err)
			}
			if err = g.AddDecay(d.names[i], b.Name, fraction, b.Mode); err != nil {
				return nil, loadErrorf("Graph", err)
			}
		}
	}

	return g, nil
}

// Descendants returns every nuclide reachable from nuclide i by decay,
// excluding i, in breadth-first order of the decay graph.
func (d *Dataset) Descendants(i int) ([]string, error) {
	if err := d.check(i); err != nil {
		return nil, err
	}
	g, err := d.Graph()
	if err != nil {
		return nil, err
	}

	return g.Descendants(d.names[i])
}
