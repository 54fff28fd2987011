// SPDX-License-Identifier: MIT

package units

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/decaychain/numeric"
)

// AvogadroConstant is the number of entities per mole (exact by SI definition).
const AvogadroConstant = 6.02214076e23

var avogadroExact = new(big.Rat).SetInt(new(big.Int).Mul(
	big.NewInt(602214076),
	new(big.Int).Exp(big.NewInt(10), big.NewInt(15), nil),
))

// ActivityToNumber returns the number of atoms with activity bq (Bq) and
// decay constant lambda (s⁻¹).
func ActivityToNumber(bq, lambda float64) (float64, error) {
	if lambda == 0 {
		return 0, ErrZeroDecayConstant
	}

	return bq / lambda, nil
}

// NumberToActivity returns the activity (Bq) of n atoms with decay constant
// lambda (s⁻¹). Stable nuclides have zero activity.
func NumberToActivity(n, lambda float64) float64 {
	return n * lambda
}

// MassToNumber returns the number of atoms in grams of a nuclide with the
// given atomic mass (g/mol).
func MassToNumber(grams, atomicMass numeric.Value) (numeric.Value, error) {
	if atomicMass.Sign() <= 0 {
		return numeric.Value{}, fmt.Errorf("%w: %s", ErrInvalidAtomicMass, atomicMass)
	}
	moles, err := grams.Quo(atomicMass)
	if err != nil {
		return numeric.Value{}, err
	}

	return MolesToNumber(moles), nil
}

// NumberToMass returns the mass in grams of n atoms.
func NumberToMass(n, atomicMass numeric.Value) (numeric.Value, error) {
	if atomicMass.Sign() <= 0 {
		return numeric.Value{}, fmt.Errorf("%w: %s", ErrInvalidAtomicMass, atomicMass)
	}

	return NumberToMoles(n).Mul(atomicMass), nil
}

// MolesToNumber returns the number of atoms in an amount of substance.
func MolesToNumber(moles numeric.Value) numeric.Value {
	return moles.Mul(avogadro(moles))
}

// NumberToMoles returns the amount of substance of n atoms.
func NumberToMoles(n numeric.Value) numeric.Value {
	out, _ := n.Quo(avogadro(n)) // Avogadro is never zero

	return out
}

// avogadro returns the constant in the representation of v.
func avogadro(v numeric.Value) numeric.Value {
	if v.IsExact() {
		return numeric.Exact(avogadroExact)
	}

	return numeric.Fixed(AvogadroConstant)
}
