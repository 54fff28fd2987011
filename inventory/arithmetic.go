// SPDX-License-Identifier: MIT

package inventory

import (
	"fmt"

	"github.com/katalvlaran/decaychain/nuclide"
	"github.com/katalvlaran/decaychain/numeric"
)

// Add returns the key-wise sum of inv and other. Nuclides held by only one
// side are taken as zero on the other. Both inventories must be bound to
// the same dataset (equal name and version).
func (inv *Inventory) Add(other *Inventory) (*Inventory, error) {
	return inv.combine("Add", other, numeric.Value.Add)
}

// Subtract returns the key-wise difference inv − other.
func (inv *Inventory) Subtract(other *Inventory) (*Inventory, error) {
	return inv.combine("Subtract", other, numeric.Value.Sub)
}

// AddContents validates contents as New does and adds them.
func (inv *Inventory) AddContents(contents map[nuclide.Ref]numeric.Value, opts ...Option) (*Inventory, error) {
	other, err := New(inv.ds, contents, opts...)
	if err != nil {
		return nil, err
	}

	return inv.Add(other)
}

// SubtractContents validates contents as New does and subtracts them.
func (inv *Inventory) SubtractContents(contents map[nuclide.Ref]numeric.Value, opts ...Option) (*Inventory, error) {
	other, err := New(inv.ds, contents, opts...)
	if err != nil {
		return nil, err
	}

	return inv.Subtract(other)
}

// Multiply scales every activity by v.
func (inv *Inventory) Multiply(v numeric.Value) (*Inventory, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: factor %s", ErrInvalidActivity, v)
	}
	out := make(map[int]numeric.Value, len(inv.contents))
	for i, a := range inv.contents {
		out[i] = a.Mul(v)
	}

	return inv.with(out), nil
}

// Divide divides every activity by v. A zero divisor fails with
// numeric.ErrDivideByZero.
func (inv *Inventory) Divide(v numeric.Value) (*Inventory, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: divisor %s", ErrInvalidActivity, v)
	}
	if v.IsZero() {
		return nil, inventoryErrorf("Divide", numeric.ErrDivideByZero)
	}
	out := make(map[int]numeric.Value, len(inv.contents))
	for i, a := range inv.contents {
		q, err := a.Quo(v)
		if err != nil {
			return nil, inventoryErrorf("Divide", err)
		}
		out[i] = q
	}

	return inv.with(out), nil
}

// Remove returns the inventory without the given nuclides. Every reference
// must name a nuclide that is held.
func (inv *Inventory) Remove(refs ...nuclide.Ref) (*Inventory, error) {
	out := inv.copyContents()
	for _, r := range refs {
		i, err := inv.lookup(r)
		if err != nil {
			return nil, inventoryErrorf("Remove", err)
		}
		delete(out, i)
	}

	return inv.with(out), nil
}

// combine merges other into a copy of inv with op. Nuclides of other are
// matched by name, so two loads of the same dataset combine freely.
func (inv *Inventory) combine(op string, other *Inventory, fn func(numeric.Value, numeric.Value) numeric.Value) (*Inventory, error) {
	if other == nil {
		return nil, inventoryErrorf(op, ErrNilInventory)
	}
	if !sameDataset(inv, other) {
		return nil, fmt.Errorf("%w: %s and %s", ErrDatasetMismatch, identity(inv), identity(other))
	}

	out := inv.copyContents()
	for j, v := range other.contents {
		i, ok := inv.ds.IndexOf(other.name(j))
		if !ok {
			return nil, fmt.Errorf("%w: %s missing from %s", ErrDatasetMismatch, other.name(j), identity(inv))
		}
		cur, held := out[i]
		if !held {
			cur = zeroLike(v)
		}
		out[i] = fn(cur, v)
	}

	return inv.with(out), nil
}

func sameDataset(a, b *Inventory) bool {
	if a.ds == b.ds {
		return true
	}

	return a.ds.Name() == b.ds.Name() && a.ds.Version() == b.ds.Version()
}

func identity(inv *Inventory) string {
	return inv.ds.Name() + "@" + inv.ds.Version()
}

// zeroLike returns 0 in the representation of v.
func zeroLike(v numeric.Value) numeric.Value {
	if v.IsExact() {
		return numeric.ExactInt(0)
	}

	return numeric.Fixed(0)
}
