// SPDX-License-Identifier: MIT

package dataset

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/decaychain/chain"
	"github.com/katalvlaran/decaychain/matrix"
	"github.com/katalvlaran/decaychain/nuclide"
	"github.com/katalvlaran/decaychain/numeric"
	"github.com/katalvlaran/decaychain/units"
)

const stageCompile = "Compile"

// link is one incoming decay: parent index k with branching fraction b.
type link struct {
	k int
	b *big.Rat
}

// Compile turns a Source into a Dataset, computing C and C⁻¹ exactly.
//
// Implementation:
//   - Stage 1: canonical names, exact rates r = 1/T½, decay energies in eV
//     and the decay graph.
//   - Stage 2: branching validation and topological order (dataset order:
//     every parent precedes its progeny, so C is lower triangular).
//   - Stage 3: exact eigenvector matrix C, column by column:
//     C[j,j] = 1 and, for i after j,
//     C[i,j] = Σ_k b(k→i)·r_k·C[k,j] / (r_i − r_j).
//     A zero denominator with a nonzero numerator is ErrDegenerateChain.
//   - Stage 4: exact C⁻¹ by forward substitution; float twins by rounding;
//     λ = ln2·r.
//
// Every failure wraps ErrDatasetLoad. ctx cancels long compilations.
//
// Complexity: O(n·(n + E)) rational operations for n nuclides and E decays.
func Compile(ctx context.Context, src *Source) (*Dataset, error) {
	if src == nil {
		return nil, loadError(stageCompile, "nil source")
	}
	if src.Name == "" {
		return nil, loadError(stageCompile, "empty dataset name")
	}

	// Stage 1: year length, rates, graph
	yearText := src.YearDays
	if yearText == "" {
		yearText = strconv.FormatFloat(units.DefaultYearDays, 'g', -1, 64)
	}
	yearExact, err := numeric.ParseRat(yearText)
	if err != nil {
		return nil, loadErrorf(stageCompile+": year_days", err)
	}
	yearDays, _ := yearExact.Float64()
	tc, err := units.NewTimeConverter(yearDays, yearExact)
	if err != nil {
		return nil, loadErrorf(stageCompile+": year_days", err)
	}

	energyUnit := src.EnergyUnit
	if energyUnit == "" {
		energyUnit = DefaultEnergyUnit
	}

	var (
		g        = chain.NewGraph()
		canon    = make([]string, len(src.Nuclides))
		rateOf   = make(map[string]*big.Rat, len(src.Nuclides))
		massOf   = make(map[string]float64, len(src.Nuclides))
		energyOf = make(map[string]map[string]float64)
	)
	for k, sn := range src.Nuclides {
		name, err := nuclide.Canonical(sn.Name)
		if err != nil {
			return nil, loadErrorf(stageCompile, err)
		}
		rate, err := parseRate(tc, sn)
		if err != nil {
			return nil, loadErrorf(stageCompile+": "+name, err)
		}
		mass, err := parseMass(sn.AtomicMass)
		if err != nil {
			return nil, loadErrorf(stageCompile+": "+name, err)
		}
		if err = g.AddNuclide(name, rate.Sign() > 0); err != nil {
			return nil, loadErrorf(stageCompile, err)
		}
		if len(sn.DecayEnergies) > 0 {
			if energyOf[name], err = parseEnergies(sn.DecayEnergies, energyUnit); err != nil {
				return nil, loadErrorf(stageCompile+": "+name, err)
			}
		}
		canon[k], rateOf[name], massOf[name] = name, rate, mass
	}
	for k, sn := range src.Nuclides {
		for _, sp := range sn.Progeny {
			child, err := nuclide.Canonical(sp.Name)
			if err != nil {
				return nil, loadErrorf(stageCompile+": progeny of "+canon[k], err)
			}
			frac, err := numeric.ParseRat(sp.Fraction)
			if err != nil {
				return nil, loadErrorf(stageCompile+": "+canon[k]+" → "+child, err)
			}
			if err = g.AddDecay(canon[k], child, frac, sp.Mode); err != nil {
				return nil, loadErrorf(stageCompile, err)
			}
		}
	}

	// Stage 2: validation and order
	if err = g.ValidateBranching(new(big.Rat).SetFloat64(BranchingTolerance)); err != nil {
		return nil, loadErrorf(stageCompile, err)
	}
	order, err := g.TopologicalSort(chain.WithCancelContext(ctx))
	if err != nil {
		return nil, loadErrorf(stageCompile, err)
	}
	n := len(order)
	if n == 0 {
		return nil, loadError(stageCompile, "no nuclides")
	}
	pos := make(map[string]int, n)
	for i, name := range order {
		pos[name] = i
	}
	var energies []map[string]float64
	if len(energyOf) > 0 {
		energies = make([]map[string]float64, n)
		for i, name := range order {
			energies[i] = energyOf[name]
		}
	}

	var (
		rates     = make([]*big.Rat, n)
		lambda    = make([]float64, n)
		masses    = make([]float64, n)
		parents   = make([][]link, n)
		progeny   = make([][]Branch, n)
		fractions = make([][]*big.Rat, n)
	)
	for i, name := range order {
		rates[i] = rateOf[name]
		f, _ := rates[i].Float64()
		lambda[i] = f * math.Ln2
		masses[i] = massOf[name]

		decays, err := g.Progeny(name)
		if err != nil {
			return nil, loadErrorf(stageCompile, err)
		}
		sort.SliceStable(decays, func(a, b int) bool {
			return decays[a].Fraction.Cmp(decays[b].Fraction) > 0
		})
		for _, d := range decays {
			j := pos[d.To]
			parents[j] = append(parents[j], link{k: i, b: d.Fraction})
			progeny[i] = append(progeny[i], Branch{Index: j, Fraction: d.FractionFloat(), Mode: d.Mode})
			fractions[i] = append(fractions[i], d.Fraction)
		}
	}

	// Stage 3: exact C
	cExact, err := eigenvectors(ctx, order, rates, parents)
	if err != nil {
		return nil, loadErrorf(stageCompile, err)
	}

	// Stage 4: exact C⁻¹ and float twins
	cinvExact, err := matrix.RatInverseUnitLower(cExact)
	if err != nil {
		return nil, loadErrorf(stageCompile, err)
	}
	c, err := cExact.Float()
	if err != nil {
		return nil, loadErrorf(stageCompile, err)
	}
	cinv, err := cinvExact.Float()
	if err != nil {
		return nil, loadErrorf(stageCompile, err)
	}

	return New(Parts{
		Name:           src.Name,
		Version:        src.Version,
		Nuclides:       order,
		DecayConstants: lambda,
		AtomicMasses:   masses,
		YearDays:       yearDays,
		C:              c,
		CInverse:       cinv,
		Progeny:        progeny,
		DecayEnergies:  energies,
		Exact: &ExactParts{
			Rates:     rates,
			Fractions: fractions,
			C:         cExact,
			CInverse:  cinvExact,
			YearDays:  yearExact,
		},
	})
}

// eigenvectors builds the exact unit lower-triangular C in dataset order.
func eigenvectors(ctx context.Context, names []string, rates []*big.Rat, parents [][]link) (*matrix.RatCSC, error) {
	var (
		n    = len(rates)
		ts   = make([]matrix.RatTriplet, 0, 2*n)
		col  = make([]*big.Rat, n)
		sum  = new(big.Rat)
		t    = new(big.Rat)
		den  = new(big.Rat)
		i, j int
	)
	for j = 0; j < n; j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clear(col)
		col[j] = big.NewRat(1, 1)
		ts = append(ts, matrix.RatTriplet{Row: j, Col: j, Value: col[j]})
		for i = j + 1; i < n; i++ {
			sum.SetInt64(0)
			for _, l := range parents[i] {
				if l.k < j || col[l.k] == nil {
					continue
				}
				t.Mul(l.b, rates[l.k])
				sum.Add(sum, t.Mul(t, col[l.k]))
			}
			if sum.Sign() == 0 {
				continue
			}
			den.Sub(rates[i], rates[j])
			if den.Sign() == 0 {
				return nil, fmt.Errorf("%w: %s and %s", ErrDegenerateChain, names[j], names[i])
			}
			col[i] = new(big.Rat).Quo(sum, den)
			ts = append(ts, matrix.RatTriplet{Row: i, Col: j, Value: col[i]})
		}
	}

	return matrix.NewRatCSCFromTriplets(n, n, ts)
}

// parseRate returns 1/T½ in s⁻¹, or 0 for a stable nuclide.
func parseRate(tc *units.TimeConverter, sn SourceNuclide) (*big.Rat, error) {
	text := strings.TrimSpace(sn.HalfLife)
	if text == "" || strings.EqualFold(text, StableHalfLife) {
		return new(big.Rat), nil
	}
	hl, err := numeric.ParseRat(text)
	if err != nil {
		return nil, err
	}
	if hl.Sign() <= 0 {
		return nil, fmt.Errorf("half-life %s is not positive", text)
	}
	unit := sn.Unit
	if unit == "" {
		unit = "s"
	}
	seconds, err := tc.ToSeconds(numeric.Exact(hl), unit)
	if err != nil {
		return nil, err
	}
	r, err := seconds.Rat()
	if err != nil {
		return nil, err
	}

	return r.Inv(r), nil
}

// parseEnergies converts decay energies given in unit to eV.
func parseEnergies(in map[string]string, unit string) (map[string]float64, error) {
	out := make(map[string]float64, len(in))
	for mode, text := range in {
		r, err := numeric.ParseRat(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("decay energy %s: %w", mode, err)
		}
		ev, err := units.ConvertEnergy(numeric.Exact(r), unit, "eV")
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(mode)] = ev.Float64()
	}

	return out, nil
}

func parseMass(text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	m, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("atomic mass %q: %w", text, err)
	}

	return m, nil
}
