// SPDX-License-Identifier: MIT

package chain

import "fmt"

// topoSorter holds one depth-first walk over the decay graph.
type topoSorter struct {
	graph *Graph         // read lock held by TopologicalSort
	opts  options
	state map[string]int // White, Gray or Black per nuclide
	order []string       // nuclides in finishing order
}

// TopologicalSort returns all nuclides with every parent before its progeny.
// Roots are visited in ascending name order and progeny in insertion order,
// so the result is deterministic. A decay loop fails with ErrCycleDetected.
// WithCancelContext(ctx) makes the walk cancellable.
//
// Complexity:
//   - Time O(V log V + E), Memory O(V).
func (g *Graph) TopologicalSort(opts ...Option) ([]string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	verts := g.sortedLocked()
	sorter := &topoSorter{
		graph: g,
		opts:  o,
		state: make(map[string]int, len(verts)),
		order: make([]string, 0, len(verts)),
	}
	// Stage 1: walk from every unfinished nuclide.
	for _, v := range verts {
		if sorter.state[v] == White {
			if err := sorter.visit(v); err != nil {
				return nil, err
			}
		}
	}
	// Stage 2: finishing order reversed puts parents first.
	for i, j := 0, len(sorter.order)-1; i < j; i, j = i+1, j-1 {
		sorter.order[i], sorter.order[j] = sorter.order[j], sorter.order[i]
	}

	return sorter.order, nil
}

// visit finishes id after all of its progeny.
func (t *topoSorter) visit(id string) error {
	select {
	case <-t.opts.ctx.Done():
		return t.opts.ctx.Err()
	default:
	}
	switch t.state[id] {
	case Gray: // id is its own descendant
		return fmt.Errorf("%w: through %s", ErrCycleDetected, id)
	case Black:
		return nil
	}
	t.state[id] = Gray
	for _, d := range t.graph.nodes[id].out {
		if err := t.visit(d.To); err != nil {
			return err
		}
	}
	t.state[id] = Black
	t.order = append(t.order, id)

	return nil
}
