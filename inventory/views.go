// SPDX-License-Identifier: MIT

package inventory

import (
	"github.com/katalvlaran/decaychain/numeric"
	"github.com/katalvlaran/decaychain/units"
)

// HalfLives returns the half-life of every nuclide held, in unit. Stable
// nuclides map to +Inf. Values are exact when the dataset carries exact data.
func (inv *Inventory) HalfLives(unit string) (map[string]numeric.Value, error) {
	tc := inv.ds.TimeConverter()
	out := make(map[string]numeric.Value, len(inv.contents))
	for i := range inv.contents {
		hl, err := inv.ds.HalfLifeValue(i)
		if err != nil {
			return nil, inventoryErrorf("HalfLives", err)
		}
		if hl, err = tc.FromSeconds(hl, unit); err != nil {
			return nil, inventoryErrorf("HalfLives", err)
		}
		out[inv.name(i)] = hl
	}

	return out, nil
}

// ReadableHalfLives renders every half-life in its most natural unit,
// e.g. "12.32 y" or "stable".
func (inv *Inventory) ReadableHalfLives() map[string]string {
	tc := inv.ds.TimeConverter()
	out := make(map[string]string, len(inv.contents))
	for i := range inv.contents {
		hl, _ := inv.ds.HalfLife(i)
		out[inv.name(i)] = tc.Readable(hl)
	}

	return out
}

// Progeny returns the direct progeny of every nuclide held, ordered by
// decreasing branching fraction.
func (inv *Inventory) Progeny() map[string][]string {
	out := make(map[string][]string, len(inv.contents))
	for i := range inv.contents {
		branches, _ := inv.ds.Progeny(i)
		names := make([]string, len(branches))
		for k, b := range branches {
			names[k] = b.Name
		}
		out[inv.name(i)] = names
	}

	return out
}

// BranchingFractions returns the branching fractions matching Progeny.
func (inv *Inventory) BranchingFractions() map[string][]float64 {
	out := make(map[string][]float64, len(inv.contents))
	for i := range inv.contents {
		branches, _ := inv.ds.Progeny(i)
		fractions := make([]float64, len(branches))
		for k, b := range branches {
			fractions[k] = b.Fraction
		}
		out[inv.name(i)] = fractions
	}

	return out
}

// DecayModes returns the decay mode labels matching Progeny.
func (inv *Inventory) DecayModes() map[string][]string {
	out := make(map[string][]string, len(inv.contents))
	for i := range inv.contents {
		branches, _ := inv.ds.Progeny(i)
		modes := make([]string, len(branches))
		for k, b := range branches {
			modes[k] = b.Mode
		}
		out[inv.name(i)] = modes
	}

	return out
}

// Numbers returns the number of atoms N = A/λ of every nuclide held.
// Stable nuclides carry no activity and report 0.
func (inv *Inventory) Numbers() map[string]float64 {
	out := make(map[string]float64, len(inv.contents))
	for i, a := range inv.contents {
		lambda, _ := inv.ds.DecayConstant(i)
		n, err := units.ActivityToNumber(a.Float64(), lambda)
		if err != nil {
			n = 0
		}
		out[inv.name(i)] = n
	}

	return out
}

// Masses returns the mass of every nuclide held, in unit ("g", "mg", ...).
// Nuclides without an atomic mass fail with units.ErrInvalidAtomicMass.
func (inv *Inventory) Masses(unit string) (map[string]float64, error) {
	out := make(map[string]float64, len(inv.contents))
	for name, n := range inv.Numbers() {
		i, _ := inv.ds.IndexOf(name)
		am, _ := inv.ds.AtomicMass(i)
		grams, err := units.NumberToMass(numeric.Fixed(n), numeric.Fixed(am))
		if err != nil {
			return nil, inventoryErrorf("Masses", err)
		}
		if grams, err = units.ConvertMass(grams, "g", unit); err != nil {
			return nil, inventoryErrorf("Masses", err)
		}
		out[name] = grams.Float64()
	}

	return out, nil
}

// Moles returns the amount of substance of every nuclide held, in unit
// ("mol", "mmol", ...).
func (inv *Inventory) Moles(unit string) (map[string]float64, error) {
	out := make(map[string]float64, len(inv.contents))
	for name, n := range inv.Numbers() {
		mol, err := units.ConvertMoles(units.NumberToMoles(numeric.Fixed(n)), "mol", unit)
		if err != nil {
			return nil, inventoryErrorf("Moles", err)
		}
		out[name] = mol.Float64()
	}

	return out, nil
}
