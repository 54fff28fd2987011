// SPDX-License-Identifier: MIT

package inventory

import (
	"github.com/katalvlaran/decaychain/engine"
	"github.com/katalvlaran/decaychain/numeric"
)

// Decay evolves the inventory by elapsed time given in unit ("s", "h",
// "y", ...) in float64 arithmetic and returns the new inventory. Every
// nuclide reachable from the current contents is present in the result;
// a negative time evolves backwards.
func (inv *Inventory) Decay(elapsed numeric.Value, unit string, opts ...engine.Option) (*Inventory, error) {
	secs, err := inv.ds.TimeConverter().ToSeconds(elapsed, unit)
	if err != nil {
		return nil, inventoryErrorf("Decay", err)
	}

	in := make(map[int]float64, len(inv.contents))
	for i, v := range inv.contents {
		in[i] = v.Float64()
	}
	res, err := engine.Evolve(inv.ds, in, secs.Float64(), opts...)
	if err != nil {
		return nil, inventoryErrorf("Decay", err)
	}

	out := make(map[int]numeric.Value, len(res))
	for i, a := range res {
		out[i] = numeric.Fixed(a)
	}

	return inv.with(out), nil
}

// DecayExact evolves the inventory in exact arithmetic, rounding every
// activity to sig significant figures. The time conversion is exact when
// elapsed is exact; fixed times enter through their shortest decimal form.
func (inv *Inventory) DecayExact(elapsed numeric.Value, unit string, sig int, opts ...engine.Option) (*Inventory, error) {
	exact := elapsed
	if !elapsed.IsExact() {
		r, err := elapsed.Rat()
		if err != nil {
			return nil, inventoryErrorf("DecayExact", engine.ErrInvalidTime)
		}
		exact = numeric.Exact(r)
	}
	secs, err := inv.ds.TimeConverter().ToSeconds(exact, unit)
	if err != nil {
		return nil, inventoryErrorf("DecayExact", err)
	}
	t, err := secs.Rat()
	if err != nil {
		return nil, inventoryErrorf("DecayExact", err)
	}

	res, err := engine.EvolveExact(inv.ds, inv.contents, t, sig, opts...)
	if err != nil {
		return nil, inventoryErrorf("DecayExact", err)
	}

	return inv.with(res), nil
}
