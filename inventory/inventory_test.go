// SPDX-License-Identifier: MIT

package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/inventory"
	"github.com/katalvlaran/decaychain/nuclide"
	"github.com/katalvlaran/decaychain/numeric"
	"github.com/katalvlaran/decaychain/units"
)

func TestNew(t *testing.T) {
	ds := MustDataset(t, "chains-test")
	inv, err := inventory.New(ds, map[nuclide.Ref]numeric.Value{
		nuclide.Name("H3"):    numeric.Fixed(10),
		nuclide.Name("99mTc"): numeric.Fixed(2.3),
	})
	require.NoError(t, err)

	assert.Same(t, ds, inv.Dataset())
	assert.Equal(t, 2, inv.Len())
	assert.Equal(t, []string{"H-3", "Tc-99m"}, inv.Nuclides())
	assert.Equal(t, 2.3, activity(t, inv, "Tc-99m"))
	assert.Equal(t, "Inventory activities (Bq): {H-3: 10, Tc-99m: 2.3}, decay dataset: chains-test", inv.String())

	_, err = inv.Activity(nuclide.Name("C-14"))
	assert.ErrorIs(t, err, inventory.ErrNuclideNotPresent)
}

func TestNew_ByID(t *testing.T) {
	ds := MustDataset(t, "chains-test")
	tc, err := nuclide.Parse("Tc-99m")
	require.NoError(t, err)

	inv, err := inventory.New(ds, map[nuclide.Ref]numeric.Value{nuclide.Of(tc): numeric.ExactInt(7)})
	require.NoError(t, err)
	got, err := inv.Activity(nuclide.Name("Tc99m"))
	require.NoError(t, err)
	assert.True(t, got.Equal(numeric.ExactInt(7)))
}

func TestNew_WithUnit(t *testing.T) {
	ds := MustDataset(t, "chains-test")
	inv, err := inventory.New(ds, map[nuclide.Ref]numeric.Value{nuclide.Name("Cs-137"): numeric.ExactInt(2)},
		inventory.WithUnit("kBq"))
	require.NoError(t, err)
	got, err := inv.Activity(nuclide.Name("Cs-137"))
	require.NoError(t, err)
	assert.Equal(t, "2000", got.String())

	inCi, err := inv.Activities("μCi")
	require.NoError(t, err)
	assert.Equal(t, "2/37", inCi["Cs-137"].String())
}

func TestNew_Errors(t *testing.T) {
	ds := MustDataset(t, "chains-test")

	tests := []struct {
		name     string
		contents map[nuclide.Ref]numeric.Value
		opts     []inventory.Option
		want     error
	}{
		{"unknown", map[nuclide.Ref]numeric.Value{nuclide.Name("Co-60"): numeric.Fixed(1)}, nil, nuclide.ErrUnknownNuclide},
		{"malformed", map[nuclide.Ref]numeric.Value{nuclide.Name("Xx-3"): numeric.Fixed(1)}, nil, nuclide.ErrInvalidNuclide},
		{"nan", map[nuclide.Ref]numeric.Value{nuclide.Name("H-3"): numeric.Fixed(math.NaN())}, nil, inventory.ErrInvalidActivity},
		{"inf", map[nuclide.Ref]numeric.Value{nuclide.Name("H-3"): numeric.Fixed(math.Inf(1))}, nil, inventory.ErrInvalidActivity},
		{"duplicate", map[nuclide.Ref]numeric.Value{
			nuclide.Name("H-3"): numeric.Fixed(1),
			nuclide.Name("3H"):  numeric.Fixed(2),
		}, nil, inventory.ErrDuplicateNuclide},
		{"unit", map[nuclide.Ref]numeric.Value{nuclide.Name("H-3"): numeric.Fixed(1)},
			[]inventory.Option{inventory.WithUnit("furlong")}, units.ErrUnknownUnit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.New(ds, tc.contents, tc.opts...)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := inventory.New(nil, nil)
	assert.ErrorIs(t, err, inventory.ErrNilDataset)
}

func TestAddSubtract(t *testing.T) {
	ds := MustDataset(t, "chains-test")
	a := MustInventory(t, ds, map[string]float64{"H-3": 10, "C-14": 1})
	b := MustInventory(t, ds, map[string]float64{"H-3": 4, "Sr-90": 3})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"C-14", "H-3", "Sr-90"}, sum.Nuclides())
	assert.Equal(t, 14.0, activity(t, sum, "H-3"))
	assert.Equal(t, 1.0, activity(t, sum, "C-14"))
	assert.Equal(t, 3.0, activity(t, sum, "Sr-90"))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, 6.0, activity(t, diff, "H-3"))
	assert.Equal(t, -3.0, activity(t, diff, "Sr-90"))

	// receivers are untouched
	assert.Equal(t, []string{"C-14", "H-3"}, a.Nuclides())
	assert.Equal(t, 10.0, activity(t, a, "H-3"))

	more, err := a.AddContents(map[nuclide.Ref]numeric.Value{nuclide.Name("C14"): numeric.Fixed(1)}, inventory.WithUnit("kBq"))
	require.NoError(t, err)
	assert.Equal(t, 1001.0, activity(t, more, "C-14"))

	less, err := a.SubtractContents(map[nuclide.Ref]numeric.Value{nuclide.Name("H-3"): numeric.Fixed(10)})
	require.NoError(t, err)
	assert.Zero(t, activity(t, less, "H-3"))

	_, err = a.AddContents(map[nuclide.Ref]numeric.Value{nuclide.Name("Co-60"): numeric.Fixed(1)})
	assert.ErrorIs(t, err, nuclide.ErrUnknownNuclide)
}

func TestAdd_ExactStaysExact(t *testing.T) {
	ds := MustDataset(t, "chains-test")
	a, err := inventory.New(ds, map[nuclide.Ref]numeric.Value{nuclide.Name("H-3"): exact(t, "1/3")})
	require.NoError(t, err)
	sum, err := a.Add(a)
	require.NoError(t, err)
	got, err := sum.Activity(nuclide.Name("H-3"))
	require.NoError(t, err)
	assert.Equal(t, "2/3", got.String())
}

func TestAdd_DatasetMismatch(t *testing.T) {
	a := MustInventory(t, MustDataset(t, "chains-test"), map[string]float64{"H-3": 1})
	b := MustInventory(t, MustDataset(t, "other-chains"), map[string]float64{"H-3": 1})

	_, err := a.Add(b)
	assert.ErrorIs(t, err, inventory.ErrDatasetMismatch)
	_, err = a.Subtract(b)
	assert.ErrorIs(t, err, inventory.ErrDatasetMismatch)

	_, err = a.Add(nil)
	assert.ErrorIs(t, err, inventory.ErrNilInventory)
	_, err = a.Subtract(nil)
	assert.ErrorIs(t, err, inventory.ErrNilInventory)

	// a second load of the same dataset is compatible
	c := MustInventory(t, MustDataset(t, "chains-test"), map[string]float64{"H-3": 2})
	sum, err := a.Add(c)
	require.NoError(t, err)
	assert.Equal(t, 3.0, activity(t, sum, "H-3"))
}

func TestMultiplyDivide(t *testing.T) {
	ds := MustDataset(t, "chains-test")
	inv := MustInventory(t, ds, map[string]float64{"H-3": 10, "C-14": 4})

	doubled, err := inv.Multiply(numeric.Fixed(2))
	require.NoError(t, err)
	assert.Equal(t, 20.0, activity(t, doubled, "H-3"))
	assert.Equal(t, 8.0, activity(t, doubled, "C-14"))

	halved, err := inv.Divide(numeric.ExactInt(2))
	require.NoError(t, err)
	assert.Equal(t, 5.0, activity(t, halved, "H-3"))

	_, err = inv.Divide(numeric.Fixed(0))
	assert.ErrorIs(t, err, numeric.ErrDivideByZero)
	_, err = inv.Multiply(numeric.Fixed(math.NaN()))
	assert.ErrorIs(t, err, inventory.ErrInvalidActivity)
}

func TestDivide_EmptyByZero(t *testing.T) {
	empty, err := inventory.New(MustDataset(t, "chains-test"), nil)
	require.NoError(t, err)
	require.Zero(t, empty.Len())

	for _, zero := range []numeric.Value{numeric.Fixed(0), numeric.ExactInt(0)} {
		_, err = empty.Divide(zero)
		assert.ErrorIs(t, err, numeric.ErrDivideByZero, zero.String())
	}

	same, err := empty.Divide(numeric.Fixed(2))
	require.NoError(t, err)
	assert.Zero(t, same.Len())
}

func TestRemove(t *testing.T) {
	ds := MustDataset(t, "chains-test")
	inv := MustInventory(t, ds, map[string]float64{"H-3": 10, "C-14": 4, "Sr-90": 1})

	out, err := inv.Remove(nuclide.Name("3H"), nuclide.Name("Sr90"))
	require.NoError(t, err)
	assert.Equal(t, []string{"C-14"}, out.Nuclides())
	assert.Equal(t, 3, inv.Len())

	_, err = out.Remove(nuclide.Name("H-3"))
	assert.ErrorIs(t, err, inventory.ErrNuclideNotPresent)
	_, err = out.Remove(nuclide.Name("bogus"))
	assert.ErrorIs(t, err, nuclide.ErrInvalidNuclide)
}
