// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
	"math/big"

	"github.com/katalvlaran/decaychain/matrix"
	"github.com/katalvlaran/decaychain/nuclide"
	"github.com/katalvlaran/decaychain/numeric"
	"github.com/katalvlaran/decaychain/units"
)

// BranchingTolerance bounds |Σ fractions − 1| for every radioactive parent.
const BranchingTolerance = 1e-6

// exactLambdaTolerance bounds the relative gap between λ and ln2·rate.
const exactLambdaTolerance = 1e-9

// exactFractionTolerance bounds the gap between a float branching fraction
// and its exact value.
const exactFractionTolerance = 1e-12

const stageNew = "New"

// ModeIT labels an isomeric transition.
const ModeIT = "IT"

// Branch is one direct decay of a parent nuclide.
type Branch struct {
	Index    int     // dataset index of the progeny
	Name     string  // canonical progeny name
	Fraction float64 // branching fraction in [0, 1]
	Mode     string  // decay mode label, e.g. "β-"
}

// Parts is the raw material of a Dataset. New validates and copies it.
type Parts struct {
	Name    string
	Version string

	Nuclides       []string  // canonical names; position is the index
	DecayConstants []float64 // s⁻¹, 0 for stable
	AtomicMasses   []float64 // g/mol; empty or one per nuclide (0 = unknown)
	YearDays       float64   // days per year used by time conversions

	C        *matrix.CSC // unit lower-triangular eigenvector matrix
	CInverse *matrix.CSC // its inverse
	Progeny  [][]Branch  // empty or one list per nuclide

	// DecayEnergies is empty or one map per nuclide from decay mode to the
	// energy released per decay in eV. Nil maps mean no data.
	DecayEnergies []map[string]float64

	Exact *ExactParts // optional arbitrary-precision counterpart
}

// Dataset is an immutable decay dataset. All accessors return copies or
// immutable values, so one Dataset may be shared by any number of
// goroutines and inventories.
type Dataset struct {
	name    string
	version string

	names      []string
	index      map[string]int
	lambda     []float64
	atomicMass []float64
	yearDays   float64

	c, cinv         *matrix.CSC
	cRows, cinvRows *matrix.CSR
	progeny         [][]Branch
	energies        []map[string]float64

	exact *Exact
}

// Compile-time assertion.
var _ nuclide.Index = (*Dataset)(nil)

// New validates p and builds a Dataset.
//
// Implementation:
//   - Stage 1: identity and nuclide names (non-empty, canonical, unique).
//   - Stage 2: per-nuclide constants (finite, non-negative).
//   - Stage 3: matrices (n×n, unit lower-triangular in dataset order).
//   - Stage 4: progeny map (indices after the parent, fractions summing to 1)
//     and decay energies.
//   - Stage 5: exact counterpart, when present.
//
// Every failure wraps ErrDatasetLoad.
func New(p Parts) (*Dataset, error) {
	// Stage 1: identity and names
	if p.Name == "" {
		return nil, loadError(stageNew, "empty dataset name")
	}
	n := len(p.Nuclides)
	if n == 0 {
		return nil, loadError(stageNew, "no nuclides")
	}
	index := make(map[string]int, n)
	for i, name := range p.Nuclides {
		canon, err := nuclide.Canonical(name)
		if err != nil {
			return nil, loadErrorf(stageNew, err)
		}
		if canon != name {
			return nil, loadError(stageNew, "nuclide %q is not canonical (%s)", name, canon)
		}
		if _, dup := index[name]; dup {
			return nil, loadError(stageNew, "duplicate nuclide %s", name)
		}
		index[name] = i
	}

	// Stage 2: constants
	if len(p.DecayConstants) != n {
		return nil, loadError(stageNew, "%d decay constants for %d nuclides", len(p.DecayConstants), n)
	}
	for i, l := range p.DecayConstants {
		if math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
			return nil, loadError(stageNew, "decay constant of %s is %v", p.Nuclides[i], l)
		}
	}
	masses := make([]float64, n)
	switch len(p.AtomicMasses) {
	case 0:
	case n:
		for i, m := range p.AtomicMasses {
			if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
				return nil, loadError(stageNew, "atomic mass of %s is %v", p.Nuclides[i], m)
			}
		}
		copy(masses, p.AtomicMasses)
	default:
		return nil, loadError(stageNew, "%d atomic masses for %d nuclides", len(p.AtomicMasses), n)
	}
	if !(p.YearDays > 0) || math.IsInf(p.YearDays, 0) {
		return nil, loadError(stageNew, "year length %v days", p.YearDays)
	}

	// Stage 3: matrices
	for _, tm := range []struct {
		tag string
		m   *matrix.CSC
	}{{"C", p.C}, {"C⁻¹", p.CInverse}} {
		tag, m := tm.tag, tm.m
		if m == nil {
			return nil, loadError(stageNew, "missing %s", tag)
		}
		if m.Rows() != n || m.Cols() != n {
			return nil, loadError(stageNew, "%s is %dx%d, want %dx%d", tag, m.Rows(), m.Cols(), n, n)
		}
		if err := matrix.ValidateUnitLowerTriangular(m); err != nil {
			return nil, loadErrorf(stageNew+": "+tag, err)
		}
	}

	// Stage 4: progeny
	progeny, err := validateProgeny(p.Progeny, p.Nuclides, p.DecayConstants)
	if err != nil {
		return nil, err
	}
	energies, err := validateEnergies(p.DecayEnergies, p.Nuclides)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		name:       p.Name,
		version:    p.Version,
		names:      append([]string(nil), p.Nuclides...),
		index:      index,
		lambda:     append([]float64(nil), p.DecayConstants...),
		atomicMass: masses,
		yearDays:   p.YearDays,
		c:          p.C,
		cinv:       p.CInverse,
		cRows:      p.C.ToCSR(),
		cinvRows:   p.CInverse.ToCSR(),
		progeny:    progeny,
		energies:   energies,
	}

	// Stage 5: exact counterpart
	if p.Exact != nil {
		if ds.exact, err = newExact(*p.Exact, ds); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func validateProgeny(in [][]Branch, names []string, lambda []float64) ([][]Branch, error) {
	n := len(names)
	out := make([][]Branch, n)
	if len(in) == 0 {
		return out, nil
	}
	if len(in) != n {
		return nil, loadError(stageNew, "%d progeny lists for %d nuclides", len(in), n)
	}
	for i, list := range in {
		if len(list) == 0 {
			continue
		}
		if lambda[i] == 0 {
			return nil, loadError(stageNew, "stable nuclide %s has progeny", names[i])
		}
		var sum float64
		out[i] = make([]Branch, len(list))
		for k, b := range list {
			if b.Index <= i || b.Index >= n {
				return nil, loadError(stageNew, "progeny index %d of %s not after parent", b.Index, names[i])
			}
			if !(b.Fraction >= 0 && b.Fraction <= 1) {
				return nil, loadError(stageNew, "branching fraction %v of %s → %s", b.Fraction, names[i], names[b.Index])
			}
			sum += b.Fraction
			b.Name = names[b.Index]
			out[i][k] = b
		}
		if math.Abs(sum-1) > BranchingTolerance {
			return nil, loadError(stageNew, "branching fractions of %s sum to %v", names[i], sum)
		}
	}

	return out, nil
}

// validateEnergies copies the decay energies. Values must be finite and
// non-negative; an isomeric transition energy needs a metastable nuclide.
func validateEnergies(in []map[string]float64, names []string) ([]map[string]float64, error) {
	n := len(names)
	out := make([]map[string]float64, n)
	if len(in) == 0 {
		return out, nil
	}
	if len(in) != n {
		return nil, loadError(stageNew, "%d decay energy maps for %d nuclides", len(in), n)
	}
	for i, m := range in {
		if len(m) == 0 {
			continue
		}
		out[i] = make(map[string]float64, len(m))
		for mode, e := range m {
			if mode == "" {
				return nil, loadError(stageNew, "decay energy of %s has no mode", names[i])
			}
			if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 {
				return nil, loadError(stageNew, "%s decay energy of %s is %v", mode, names[i], e)
			}
			if mode == ModeIT {
				nc, err := nuclide.Parse(names[i])
				if err != nil {
					return nil, loadErrorf(stageNew, err)
				}
				if nc.State == nuclide.Ground {
					return nil, loadError(stageNew, "%s is not metastable but has an %s energy", names[i], ModeIT)
				}
			}
			out[i][mode] = e
		}
	}

	return out, nil
}

// Name returns the dataset identity used for compatibility checks.
func (d *Dataset) Name() string { return d.name }

// Version returns the free-form dataset version.
func (d *Dataset) Version() string { return d.version }

// Len returns the number of nuclides.
func (d *Dataset) Len() int { return len(d.names) }

// Nuclides returns the nuclide names in index order.
func (d *Dataset) Nuclides() []string { return append([]string(nil), d.names...) }

// NuclideAt returns the name at index i.
func (d *Dataset) NuclideAt(i int) (string, error) {
	if err := d.check(i); err != nil {
		return "", err
	}

	return d.names[i], nil
}

// IndexOf returns the index of a canonical nuclide name.
func (d *Dataset) IndexOf(name string) (int, bool) {
	i, ok := d.index[name]

	return i, ok
}

// Resolve maps any nuclide reference onto an index of d.
func (d *Dataset) Resolve(r nuclide.Ref) (int, error) { return nuclide.Resolve(r, d) }

// DecayConstant returns λ of nuclide i in s⁻¹ (0 for stable).
func (d *Dataset) DecayConstant(i int) (float64, error) {
	if err := d.check(i); err != nil {
		return 0, err
	}

	return d.lambda[i], nil
}

// DecayConstants returns all λ in index order.
func (d *Dataset) DecayConstants() []float64 { return append([]float64(nil), d.lambda...) }

// HalfLife returns the half-life of nuclide i in seconds, +Inf when stable.
func (d *Dataset) HalfLife(i int) (float64, error) {
	if err := d.check(i); err != nil {
		return 0, err
	}
	if d.lambda[i] == 0 {
		return math.Inf(1), nil
	}

	return math.Ln2 / d.lambda[i], nil
}

// Radioactive reports whether nuclide i decays.
func (d *Dataset) Radioactive(i int) bool { return i >= 0 && i < len(d.lambda) && d.lambda[i] > 0 }

// AtomicMass returns the atomic mass of nuclide i in g/mol, 0 when unknown.
func (d *Dataset) AtomicMass(i int) (float64, error) {
	if err := d.check(i); err != nil {
		return 0, err
	}

	return d.atomicMass[i], nil
}

// YearDays returns the number of days per year.
func (d *Dataset) YearDays() float64 { return d.yearDays }

// TimeConverter returns a units converter for this dataset's year length.
func (d *Dataset) TimeConverter() *units.TimeConverter {
	var exact *big.Rat
	if d.exact != nil {
		exact = d.exact.YearDays()
	}
	tc, err := units.NewTimeConverter(d.yearDays, exact)
	if err != nil {
		// year length was validated by New
		panic(fmt.Sprintf("dataset: %v", err))
	}

	return tc
}

// C returns the eigenvector matrix. CSC values are immutable.
func (d *Dataset) C() *matrix.CSC { return d.c }

// CInverse returns the inverse eigenvector matrix.
func (d *Dataset) CInverse() *matrix.CSC { return d.cinv }

// CRows returns C in row-compressed form for row-block products.
func (d *Dataset) CRows() *matrix.CSR { return d.cRows }

// CInverseRows returns C⁻¹ in row-compressed form.
func (d *Dataset) CInverseRows() *matrix.CSR { return d.cinvRows }

// Progeny returns the direct decays of nuclide i ordered by decreasing
// branching fraction.
func (d *Dataset) Progeny(i int) ([]Branch, error) {
	if err := d.check(i); err != nil {
		return nil, err
	}

	return append([]Branch(nil), d.progeny[i]...), nil
}

// DecayEnergies returns the energy released per decay of nuclide i, keyed
// by decay mode and expressed in unit (eV, keV, MeV, J, Wh, ...). The map
// is empty when the dataset has no energy data for i.
func (d *Dataset) DecayEnergies(i int, unit string) (map[string]float64, error) {
	if err := d.check(i); err != nil {
		return nil, err
	}
	perEV, err := units.ConvertEnergy(numeric.Fixed(1), "eV", unit)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(d.energies[i]))
	for mode, ev := range d.energies[i] {
		out[mode] = ev * perEV.Float64()
	}

	return out, nil
}

// Exact returns the arbitrary-precision counterpart, if loaded.
func (d *Dataset) Exact() (*Exact, bool) { return d.exact, d.exact != nil }

// HalfLifeValue returns the half-life of nuclide i in seconds as a Value:
// exact when the dataset carries an exact counterpart, fixed otherwise.
// Stable nuclides yield a fixed +Inf.
func (d *Dataset) HalfLifeValue(i int) (numeric.Value, error) {
	if err := d.check(i); err != nil {
		return numeric.Value{}, err
	}
	if d.exact != nil {
		if hl := d.exact.HalfLife(i); hl != nil {
			return numeric.Exact(hl), nil
		}
	}
	hl, _ := d.HalfLife(i)

	return numeric.Fixed(hl), nil
}

// String returns "name (version): n nuclides".
func (d *Dataset) String() string {
	return fmt.Sprintf("%s (%s): %d nuclides", d.name, d.version, len(d.names))
}

func (d *Dataset) check(i int) error {
	if i < 0 || i >= len(d.names) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(d.names))
	}

	return nil
}
