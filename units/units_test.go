// SPDX-License-Identifier: MIT

package units_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/numeric"
	"github.com/katalvlaran/decaychain/units"
)

func MustConverter(t *testing.T) *units.TimeConverter {
	t.Helper()
	c, err := units.NewTimeConverter(units.DefaultYearDays, big.NewRat(3652422, 10000))
	require.NoError(t, err)

	return c
}

func TestTimeConverter_Fixed(t *testing.T) {
	c := MustConverter(t)
	for _, tc := range []struct {
		unit string
		want float64
	}{
		{"s", 1},
		{"ms", 1e-3},
		{"μs", 1e-6},
		{"µs", 1e-6}, // micro sign U+00B5
		{"us", 1e-6},
		{"m", 60},
		{"h", 3600},
		{"d", 86400},
		{"y", 365.2422 * 86400},
		{"ky", 365.2422 * 86400 * 1e3},
	} {
		t.Run(tc.unit, func(t *testing.T) {
			got, err := c.ToSeconds(numeric.Fixed(1), tc.unit)
			require.NoError(t, err)
			assert.InEpsilon(t, tc.want, got.Float64(), 1e-15)
		})
	}
}

func TestTimeConverter_Exact(t *testing.T) {
	c := MustConverter(t)

	got, err := c.ToSeconds(numeric.ExactInt(20), "h")
	require.NoError(t, err)
	assert.True(t, got.IsExact())
	assert.Equal(t, "72000", got.String())

	hl, err := numeric.ParseExact("12.32")
	require.NoError(t, err)
	got, err = c.ToSeconds(hl, "y")
	require.NoError(t, err)
	want := new(big.Rat).Mul(big.NewRat(1232, 100), big.NewRat(3652422*86400, 10000))
	r, err := got.Rat()
	require.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(want))

	back, err := c.Convert(got, "s", "y")
	require.NoError(t, err)
	assert.Equal(t, "308/25", back.String())
}

func TestTimeConverter_Errors(t *testing.T) {
	c := MustConverter(t)
	_, err := c.ToSeconds(numeric.Fixed(1), "fortnight")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)

	_, err = units.NewTimeConverter(0, nil)
	assert.ErrorIs(t, err, units.ErrInvalidYearLength)
	_, err = units.NewTimeConverter(365, big.NewRat(-1, 1))
	assert.ErrorIs(t, err, units.ErrInvalidYearLength)
}

func TestReadable(t *testing.T) {
	c := MustConverter(t)
	year := c.YearSeconds()
	assert.Equal(t, "12.32 y", c.Readable(12.32*year))
	assert.Equal(t, "6.007 h", c.Readable(6.0072*3600))
	assert.Equal(t, "2.552 m", c.Readable(2.552*60))
	assert.Equal(t, "5.7 ky", c.Readable(5700*year))
	assert.Equal(t, "stable", c.Readable(math.Inf(1)))
}

func TestConvertActivity(t *testing.T) {
	got, err := units.ConvertActivity(numeric.Fixed(1), "Ci", "GBq")
	require.NoError(t, err)
	assert.InEpsilon(t, 37.0, got.Float64(), 1e-15)

	got, err = units.ConvertActivity(numeric.ExactInt(60), "dpm", "Bq")
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())

	_, err = units.ConvertActivity(numeric.Fixed(1), "kg", "Bq")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
}

func TestMassAndMoles(t *testing.T) {
	got, err := units.ConvertMass(numeric.Fixed(2), "kg", "g")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, got.Float64())

	got, err = units.ConvertMoles(numeric.ExactInt(3), "mmol", "mol")
	require.NoError(t, err)
	assert.Equal(t, "3/1000", got.String())

	n := units.MolesToNumber(numeric.ExactInt(1))
	assert.Equal(t, "602214076000000000000000", n.String())

	mol := units.NumberToMoles(numeric.Fixed(units.AvogadroConstant))
	assert.InEpsilon(t, 1.0, mol.Float64(), 1e-15)

	atoms, err := units.MassToNumber(numeric.Fixed(3.016029), numeric.Fixed(3.016029))
	require.NoError(t, err)
	assert.InEpsilon(t, units.AvogadroConstant, atoms.Float64(), 1e-15)

	grams, err := units.NumberToMass(numeric.Fixed(units.AvogadroConstant), numeric.Fixed(12))
	require.NoError(t, err)
	assert.InEpsilon(t, 12.0, grams.Float64(), 1e-15)

	_, err = units.MassToNumber(numeric.Fixed(1), numeric.Fixed(0))
	assert.ErrorIs(t, err, units.ErrInvalidAtomicMass)
}

func TestConvertEnergy(t *testing.T) {
	tests := []struct {
		name     string
		v        numeric.Value
		from, to string
		want     string
	}{
		{"keV to eV", numeric.ExactInt(18), "keV", "eV", "18000"},
		{"MeV to keV", numeric.ExactInt(5), "MeV", "keV", "5000"},
		{"eV to J", numeric.ExactInt(1), "eV", "J", "801088317/5000000000000000000000000000"},
		{"J to Wh", numeric.ExactInt(7200), "J", "Wh", "2"},
		{"kWh to Wh", numeric.ExactInt(1), "kWh", "Wh", "1000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := units.ConvertEnergy(tc.v, tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}

	wh, err := units.ConvertEnergy(numeric.Fixed(1), "eV", "Wh")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.602176634e-19/3600, wh.Float64(), 1e-12)

	_, err = units.ConvertEnergy(numeric.Fixed(1), "Bq", "eV")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
	assert.Contains(t, units.Units(units.Energy), "keV")
}

func TestActivityNumber(t *testing.T) {
	n, err := units.ActivityToNumber(10, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, n)
	assert.Equal(t, 10.0, units.NumberToActivity(n, 2))

	_, err = units.ActivityToNumber(10, 0)
	assert.ErrorIs(t, err, units.ErrZeroDecayConstant)
}

func TestUnitsListing(t *testing.T) {
	assert.Contains(t, units.Units(units.Time), "y")
	assert.Contains(t, units.Units(units.Time), "h")
	assert.Contains(t, units.Units(units.Activity), "Bq")
	assert.Nil(t, units.Units("length"))
}
