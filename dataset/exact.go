// SPDX-License-Identifier: MIT

package dataset

import (
	"math"
	"math/big"

	"github.com/katalvlaran/decaychain/matrix"
)

const stageExact = "exact"

// ExactParts is the raw arbitrary-precision counterpart of a dataset.
//
// Decay rates are stored as r = 1/T½ (s⁻¹) rather than λ = ln2·r, so that
// every matrix entry stays rational: ln2 cancels out of C and C⁻¹.
type ExactParts struct {
	Rates     []*big.Rat     // 1/T½ in s⁻¹, 0 for stable
	Fractions [][]*big.Rat   // exact branching fractions, aligned with Parts.Progeny
	C         *matrix.RatCSC // exact eigenvector matrix
	CInverse  *matrix.RatCSC // exact inverse
	YearDays  *big.Rat       // exact days per year
}

// Exact is the validated, immutable arbitrary-precision counterpart.
type Exact struct {
	rates     []*big.Rat
	fractions [][]*big.Rat
	c, cinv   *matrix.RatCSC
	yearDays  *big.Rat
}

// newExact validates p against the float twin already held by ds.
func newExact(p ExactParts, ds *Dataset) (*Exact, error) {
	n := len(ds.names)
	if len(p.Rates) != n {
		return nil, loadError(stageExact, "%d rates for %d nuclides", len(p.Rates), n)
	}
	rates := make([]*big.Rat, n)
	for i, r := range p.Rates {
		if r == nil || r.Sign() < 0 {
			return nil, loadError(stageExact, "rate of %s is negative or missing", ds.names[i])
		}
		if (r.Sign() == 0) != (ds.lambda[i] == 0) {
			return nil, loadError(stageExact, "stability of %s differs between exact and float data", ds.names[i])
		}
		if r.Sign() > 0 {
			f, _ := r.Float64()
			if want := f * math.Ln2; math.Abs(want-ds.lambda[i]) > exactLambdaTolerance*want {
				return nil, loadError(stageExact, "λ of %s is %v, exact rate implies %v", ds.names[i], ds.lambda[i], want)
			}
		}
		rates[i] = new(big.Rat).Set(r)
	}
	fractions, err := exactFractions(p.Fractions, ds)
	if err != nil {
		return nil, err
	}
	for _, tm := range []struct {
		tag string
		m   *matrix.RatCSC
	}{{"C", p.C}, {"C⁻¹", p.CInverse}} {
		if tm.m == nil {
			return nil, loadError(stageExact, "missing exact %s", tm.tag)
		}
		if tm.m.Rows() != n || tm.m.Cols() != n {
			return nil, loadError(stageExact, "exact %s is %dx%d, want %dx%d", tm.tag, tm.m.Rows(), tm.m.Cols(), n, n)
		}
		if err := matrix.ValidateRatUnitLowerTriangular(tm.m); err != nil {
			return nil, loadErrorf(stageExact+": "+tm.tag, err)
		}
	}
	if p.YearDays == nil || p.YearDays.Sign() <= 0 {
		return nil, loadError(stageExact, "exact year length missing or not positive")
	}
	if f, _ := p.YearDays.Float64(); math.Abs(f-ds.yearDays) > 1e-9*ds.yearDays {
		return nil, loadError(stageExact, "exact year length %s differs from %v", p.YearDays.RatString(), ds.yearDays)
	}

	return &Exact{
		rates:     rates,
		fractions: fractions,
		c:         p.C,
		cinv:      p.CInverse,
		yearDays:  new(big.Rat).Set(p.YearDays),
	}, nil
}

// exactFractions checks that in has one list per nuclide shaped like the
// float progeny of ds, that each fraction rounds to its float twin, and that
// the fractions of every parent sum to 1 within BranchingTolerance.
func exactFractions(in [][]*big.Rat, ds *Dataset) ([][]*big.Rat, error) {
	n := len(ds.names)
	if len(in) != n {
		return nil, loadError(stageExact, "%d fraction lists for %d nuclides", len(in), n)
	}
	var (
		out  = make([][]*big.Rat, n)
		one  = big.NewRat(1, 1)
		tol  = new(big.Rat).SetFloat64(BranchingTolerance)
		sum  = new(big.Rat)
		diff = new(big.Rat)
	)
	for i, list := range in {
		branches := ds.progeny[i]
		if len(list) != len(branches) {
			return nil, loadError(stageExact, "%d exact fractions for %d decays of %s", len(list), len(branches), ds.names[i])
		}
		if len(list) == 0 {
			continue
		}
		sum.SetInt64(0)
		out[i] = make([]*big.Rat, len(list))
		for k, b := range list {
			if b == nil || b.Sign() < 0 || b.Cmp(one) > 0 {
				return nil, loadError(stageExact, "exact fraction %d of %s is missing or outside [0, 1]", k, ds.names[i])
			}
			if f, _ := b.Float64(); math.Abs(f-branches[k].Fraction) > exactFractionTolerance {
				return nil, loadError(stageExact, "fraction %s → %s is %v, exact value implies %v",
					ds.names[i], branches[k].Name, branches[k].Fraction, f)
			}
			sum.Add(sum, b)
			out[i][k] = new(big.Rat).Set(b)
		}
		if diff.Sub(sum, one).Abs(diff).Cmp(tol) > 0 {
			return nil, loadError(stageExact, "exact branching fractions of %s sum to %s", ds.names[i], sum.RatString())
		}
	}

	return out, nil
}

// Len returns the number of nuclides.
func (e *Exact) Len() int { return len(e.rates) }

// Rate returns a copy of 1/T½ of nuclide i in s⁻¹ (0 for stable).
// It returns nil for an out-of-range index.
func (e *Exact) Rate(i int) *big.Rat {
	if i < 0 || i >= len(e.rates) {
		return nil
	}

	return new(big.Rat).Set(e.rates[i])
}

// HalfLife returns the exact half-life of nuclide i in seconds, or nil when
// the nuclide is stable or i is out of range.
func (e *Exact) HalfLife(i int) *big.Rat {
	if i < 0 || i >= len(e.rates) || e.rates[i].Sign() == 0 {
		return nil
	}

	return new(big.Rat).Inv(e.rates[i])
}

// Fractions returns copies of the exact branching fractions of nuclide i,
// aligned with Dataset.Progeny(i). It returns nil for a stable nuclide or an
// out-of-range index.
func (e *Exact) Fractions(i int) []*big.Rat {
	if i < 0 || i >= len(e.fractions) || len(e.fractions[i]) == 0 {
		return nil
	}
	out := make([]*big.Rat, len(e.fractions[i]))
	for k, b := range e.fractions[i] {
		out[k] = new(big.Rat).Set(b)
	}

	return out
}

// C returns the exact eigenvector matrix.
func (e *Exact) C() *matrix.RatCSC { return e.c }

// CInverse returns the exact inverse eigenvector matrix.
func (e *Exact) CInverse() *matrix.RatCSC { return e.cinv }

// YearDays returns a copy of the exact year length in days.
func (e *Exact) YearDays() *big.Rat { return new(big.Rat).Set(e.yearDays) }
