// SPDX-License-Identifier: MIT

package dataset_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/matrix"
	"github.com/katalvlaran/decaychain/nuclide"
)

// twoMemberParts is H-3 → He-3 with hand-written C and C⁻¹.
func twoMemberParts(t *testing.T) dataset.Parts {
	t.Helper()
	c, err := matrix.NewCSCFromTriplets(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 1, Col: 0, Value: -1}, {Row: 1, Col: 1, Value: 1},
	})
	require.NoError(t, err)
	cinv, err := matrix.NewCSCFromTriplets(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 1, Col: 0, Value: 1}, {Row: 1, Col: 1, Value: 1},
	})
	require.NoError(t, err)

	return dataset.Parts{
		Name:           "tiny",
		Nuclides:       []string{"H-3", "He-3"},
		DecayConstants: []float64{1.78e-9, 0},
		YearDays:       365.25,
		C:              c,
		CInverse:       cinv,
		Progeny:        [][]dataset.Branch{{{Index: 1, Fraction: 1, Mode: "β-"}}, nil},
	}
}

func TestNew_Valid(t *testing.T) {
	ds, err := dataset.New(twoMemberParts(t))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"H-3", "He-3"}, ds.Nuclides())
	assert.Equal(t, "tiny (): 2 nuclides", ds.String())

	_, ok := ds.Exact()
	assert.False(t, ok)

	i, err := ds.Resolve(nuclide.Name("3H"))
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	_, err = ds.Resolve(nuclide.Name("Cs-137"))
	assert.ErrorIs(t, err, nuclide.ErrUnknownNuclide)

	hl, err := ds.HalfLifeValue(0)
	require.NoError(t, err)
	assert.False(t, hl.IsExact())
	assert.InEpsilon(t, math.Ln2/1.78e-9, hl.Float64(), 1e-15)

	br, err := ds.Progeny(0)
	require.NoError(t, err)
	require.Len(t, br, 1)
	assert.Equal(t, "He-3", br[0].Name)

	consts := ds.DecayConstants()
	consts[0] = 42
	l, _ := ds.DecayConstant(0)
	assert.Equal(t, 1.78e-9, l, "accessors return copies")

	_, err = ds.NuclideAt(2)
	assert.ErrorIs(t, err, dataset.ErrIndexOutOfRange)
	_, err = ds.HalfLife(-1)
	assert.ErrorIs(t, err, dataset.ErrIndexOutOfRange)
	assert.Equal(t, 365.25*86400, ds.TimeConverter().YearSeconds())
}

func TestNew_Invalid(t *testing.T) {
	upper, err := matrix.NewCSCFromTriplets(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 0, Col: 1, Value: 3}, {Row: 1, Col: 1, Value: 1},
	})
	require.NoError(t, err)
	big3, err := matrix.Identity(3)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(p *dataset.Parts)
	}{
		{"empty name", func(p *dataset.Parts) { p.Name = "" }},
		{"no nuclides", func(p *dataset.Parts) { p.Nuclides = nil }},
		{"non canonical", func(p *dataset.Parts) { p.Nuclides[0] = "h3" }},
		{"duplicate", func(p *dataset.Parts) { p.Nuclides[1] = "H-3" }},
		{"constant count", func(p *dataset.Parts) { p.DecayConstants = []float64{1} }},
		{"negative constant", func(p *dataset.Parts) { p.DecayConstants[0] = -1 }},
		{"NaN constant", func(p *dataset.Parts) { p.DecayConstants[0] = math.NaN() }},
		{"mass count", func(p *dataset.Parts) { p.AtomicMasses = []float64{3} }},
		{"year length", func(p *dataset.Parts) { p.YearDays = 0 }},
		{"missing C", func(p *dataset.Parts) { p.C = nil }},
		{"C shape", func(p *dataset.Parts) { p.C = big3 }},
		{"C upper", func(p *dataset.Parts) { p.C = upper }},
		{"progeny count", func(p *dataset.Parts) { p.Progeny = p.Progeny[:1] }},
		{"progeny before parent", func(p *dataset.Parts) {
			p.Progeny = [][]dataset.Branch{nil, {{Index: 0, Fraction: 1}}}
		}},
		{"stable with progeny", func(p *dataset.Parts) {
			p.DecayConstants = []float64{1e-9, 0}
			p.Progeny = [][]dataset.Branch{nil, {{Index: 0, Fraction: 1}}}
		}},
		{"fraction sum", func(p *dataset.Parts) {
			p.Progeny = [][]dataset.Branch{{{Index: 1, Fraction: 0.5}}, nil}
		}},
		{"exact rate count", func(p *dataset.Parts) {
			p.Exact = &dataset.ExactParts{Rates: []*big.Rat{big.NewRat(1, 1)}}
		}},
		{"exact stability mismatch", func(p *dataset.Parts) {
			ex, _ := matrix.NewRatCSCFromTriplets(2, 2, []matrix.RatTriplet{
				{Row: 0, Col: 0, Value: big.NewRat(1, 1)}, {Row: 1, Col: 1, Value: big.NewRat(1, 1)},
			})
			p.Exact = &dataset.ExactParts{Rates: []*big.Rat{new(big.Rat), new(big.Rat)}, C: ex, CInverse: ex, YearDays: big.NewRat(1461, 4)}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := twoMemberParts(t)
			tc.mutate(&p)
			_, err := dataset.New(p)
			assert.ErrorIs(t, err, dataset.ErrDatasetLoad)
		})
	}
}

func TestNew_ExactConsistency(t *testing.T) {
	p := twoMemberParts(t)
	rate := big.NewRat(1, 389_000_000)
	f, _ := rate.Float64()
	p.DecayConstants[0] = f * math.Ln2

	c, err := matrix.NewRatCSCFromTriplets(2, 2, []matrix.RatTriplet{
		{Row: 0, Col: 0, Value: big.NewRat(1, 1)}, {Row: 1, Col: 0, Value: big.NewRat(-1, 1)}, {Row: 1, Col: 1, Value: big.NewRat(1, 1)},
	})
	require.NoError(t, err)
	cinv, err := matrix.RatInverseUnitLower(c)
	require.NoError(t, err)
	p.Exact = &dataset.ExactParts{
		Rates:     []*big.Rat{rate, new(big.Rat)},
		Fractions: [][]*big.Rat{{big.NewRat(1, 1)}, nil},
		C:         c,
		CInverse:  cinv,
		YearDays:  big.NewRat(1461, 4),
	}

	ds, err := dataset.New(p)
	require.NoError(t, err)
	ex, ok := ds.Exact()
	require.True(t, ok)
	assert.Equal(t, 2, ex.Len())
	assert.Equal(t, "1/389000000", ex.Rate(0).RatString())
	assert.Nil(t, ex.Rate(5))

	hl, err := ds.HalfLifeValue(0)
	require.NoError(t, err)
	assert.True(t, hl.IsExact())
	assert.Equal(t, "389000000", hl.String())

	fr := ex.Fractions(0)
	require.Len(t, fr, 1)
	assert.Equal(t, "1", fr[0].RatString())
	fr[0].SetInt64(7)
	assert.Equal(t, "1", ex.Fractions(0)[0].RatString(), "Fractions returns copies")
	assert.Nil(t, ex.Fractions(1))
	assert.Nil(t, ex.Fractions(9))

	tests := []struct {
		name   string
		mutate func(e *dataset.ExactParts)
	}{
		{"year length", func(e *dataset.ExactParts) { e.YearDays = big.NewRat(365, 1) }},
		{"fraction lists", func(e *dataset.ExactParts) { e.Fractions = e.Fractions[:1] }},
		{"fraction shape", func(e *dataset.ExactParts) {
			e.Fractions = [][]*big.Rat{{big.NewRat(1, 2), big.NewRat(1, 2)}, nil}
		}},
		{"fraction missing", func(e *dataset.ExactParts) { e.Fractions = [][]*big.Rat{{nil}, nil} }},
		{"fraction differs from float", func(e *dataset.ExactParts) {
			e.Fractions = [][]*big.Rat{{big.NewRat(999, 1000)}, nil}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := p
			ep := *p.Exact
			q.Exact = &ep
			tc.mutate(q.Exact)
			_, err := dataset.New(q)
			assert.ErrorIs(t, err, dataset.ErrDatasetLoad)
		})
	}
}

func TestNew_ExactFractionSum(t *testing.T) {
	p := twoMemberParts(t)
	p.Progeny = [][]dataset.Branch{{{Index: 1, Fraction: 0.9999995}}, nil}
	rate := big.NewRat(1, 389_000_000)
	f, _ := rate.Float64()
	p.DecayConstants[0] = f * math.Ln2
	c, err := matrix.NewRatCSCFromTriplets(2, 2, []matrix.RatTriplet{
		{Row: 0, Col: 0, Value: big.NewRat(1, 1)}, {Row: 1, Col: 0, Value: big.NewRat(-1, 1)}, {Row: 1, Col: 1, Value: big.NewRat(1, 1)},
	})
	require.NoError(t, err)
	cinv, err := matrix.RatInverseUnitLower(c)
	require.NoError(t, err)
	p.Exact = &dataset.ExactParts{
		Rates:     []*big.Rat{rate, new(big.Rat)},
		Fractions: [][]*big.Rat{{big.NewRat(19999990, 20000000)}, nil},
		C:         c,
		CInverse:  cinv,
		YearDays:  big.NewRat(1461, 4),
	}
	ds, err := dataset.New(p)
	require.NoError(t, err, "within BranchingTolerance")
	ex, _ := ds.Exact()
	assert.Equal(t, "1999999/2000000", ex.Fractions(0)[0].RatString())

	p.Exact.Fractions = [][]*big.Rat{{big.NewRat(1, 2)}, nil}
	_, err = dataset.New(p)
	assert.ErrorIs(t, err, dataset.ErrDatasetLoad)
}
