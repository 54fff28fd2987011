// SPDX-License-Identifier: MIT

package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/nuclide"
	"github.com/katalvlaran/decaychain/numeric"
	"github.com/katalvlaran/decaychain/units"
)

// DefaultUnit is the activity unit contents are stored in.
const DefaultUnit = "Bq"

// Inventory is an immutable set of nuclide activities tied to one dataset.
type Inventory struct {
	ds       *dataset.Dataset
	contents map[int]numeric.Value // dataset index → activity in Bq
}

// options configures New.
type options struct {
	unit string
}

// Option configures New.
type Option func(*options)

// WithUnit declares the activity unit of the supplied contents ("Bq",
// "kBq", "Ci", "dpm", ...). Contents are converted to Bq on construction.
func WithUnit(unit string) Option {
	return func(o *options) { o.unit = unit }
}

// New validates contents against ds and returns the inventory.
//
// Implementation:
//   - Stage 1: resolve every reference to a dataset index.
//   - Stage 2: reject invalid values and references naming one nuclide twice.
//   - Stage 3: convert to Bq.
//
// Errors: ErrNilDataset, nuclide.ErrInvalidNuclide, nuclide.ErrUnknownNuclide,
// ErrDuplicateNuclide, ErrInvalidActivity, units.ErrUnknownUnit.
func New(ds *dataset.Dataset, contents map[nuclide.Ref]numeric.Value, opts ...Option) (*Inventory, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	o := options{unit: DefaultUnit}
	for _, fn := range opts {
		fn(&o)
	}

	// Sorted refs keep error reporting deterministic.
	refs := make([]nuclide.Ref, 0, len(contents))
	for r := range contents {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(a, b int) bool { return refs[a].String() < refs[b].String() })

	out := make(map[int]numeric.Value, len(contents))
	seen := make(map[int]nuclide.Ref, len(contents))
	for _, r := range refs {
		i, err := ds.Resolve(r)
		if err != nil {
			return nil, inventoryErrorf("New", err)
		}
		if prev, dup := seen[i]; dup {
			return nil, fmt.Errorf("%w: %s and %s", ErrDuplicateNuclide, prev, r)
		}
		seen[i] = r

		v := contents[r]
		if !v.Valid() {
			return nil, fmt.Errorf("%w: %s = %s", ErrInvalidActivity, r, v)
		}
		if o.unit != DefaultUnit {
			if v, err = units.ConvertActivity(v, o.unit, DefaultUnit); err != nil {
				return nil, inventoryErrorf("New", err)
			}
		}
		out[i] = v
	}

	return &Inventory{ds: ds, contents: out}, nil
}

// FromActivities builds a fixed-precision inventory from activities in Bq
// keyed by nuclide name.
func FromActivities(ds *dataset.Dataset, activities map[string]float64) (*Inventory, error) {
	contents := make(map[nuclide.Ref]numeric.Value, len(activities))
	for name, a := range activities {
		contents[nuclide.Name(name)] = numeric.Fixed(a)
	}

	return New(ds, contents)
}

// Dataset returns the dataset the inventory is bound to.
func (inv *Inventory) Dataset() *dataset.Dataset { return inv.ds }

// Len returns the number of nuclides held.
func (inv *Inventory) Len() int { return len(inv.contents) }

// Nuclides returns the canonical names held, in ascending order.
func (inv *Inventory) Nuclides() []string {
	names := make([]string, 0, len(inv.contents))
	for i := range inv.contents {
		names = append(names, inv.name(i))
	}
	sort.Strings(names)

	return names
}

// Contents returns a copy of the activities in Bq keyed by canonical name.
func (inv *Inventory) Contents() map[string]numeric.Value {
	out := make(map[string]numeric.Value, len(inv.contents))
	for i, v := range inv.contents {
		out[inv.name(i)] = v
	}

	return out
}

// Activities returns the activities converted to unit, keyed by name.
func (inv *Inventory) Activities(unit string) (map[string]numeric.Value, error) {
	out := make(map[string]numeric.Value, len(inv.contents))
	for i, v := range inv.contents {
		a, err := units.ConvertActivity(v, DefaultUnit, unit)
		if err != nil {
			return nil, inventoryErrorf("Activities", err)
		}
		out[inv.name(i)] = a
	}

	return out, nil
}

// Activity returns the activity of one nuclide in Bq.
func (inv *Inventory) Activity(r nuclide.Ref) (numeric.Value, error) {
	i, err := inv.lookup(r)
	if err != nil {
		return numeric.Value{}, inventoryErrorf("Activity", err)
	}

	return inv.contents[i], nil
}

// String renders "Inventory activities (Bq): {H-3: 5, ...}, decay dataset: name".
func (inv *Inventory) String() string {
	var b strings.Builder
	b.WriteString("Inventory activities (Bq): {")
	for k, name := range inv.Nuclides() {
		if k > 0 {
			b.WriteString(", ")
		}
		i, _ := inv.ds.IndexOf(name)
		fmt.Fprintf(&b, "%s: %s", name, inv.contents[i])
	}
	fmt.Fprintf(&b, "}, decay dataset: %s", inv.ds.Name())

	return b.String()
}

// lookup resolves r and checks that the nuclide is held.
func (inv *Inventory) lookup(r nuclide.Ref) (int, error) {
	i, err := inv.ds.Resolve(r)
	if err != nil {
		return -1, err
	}
	if _, ok := inv.contents[i]; !ok {
		return -1, fmt.Errorf("%w: %s", ErrNuclideNotPresent, r)
	}

	return i, nil
}

func (inv *Inventory) name(i int) string {
	name, _ := inv.ds.NuclideAt(i)

	return name
}

// with returns a new inventory on the same dataset.
func (inv *Inventory) with(contents map[int]numeric.Value) *Inventory {
	return &Inventory{ds: inv.ds, contents: contents}
}

func (inv *Inventory) copyContents() map[int]numeric.Value {
	out := make(map[int]numeric.Value, len(inv.contents))
	for i, v := range inv.contents {
		out[i] = v
	}

	return out
}
