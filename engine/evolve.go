// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/matrix"
	"github.com/katalvlaran/decaychain/nuclide"
)

// Evolve decays activities (Bq, keyed by dataset index) by elapsed seconds
// and returns the activity of every nuclide reachable from the seeds.
// Stable nuclides appear with activity 0. A negative elapsed time evolves
// backwards.
//
// Implementation:
//   - Stage 1: validate time and seeds; convert activities to atom counts n₀ = A/λ.
//   - Stage 2: n(t) = C·diag(e^(−λt))·C⁻¹·n₀ over sparse storage.
//   - Stage 3: back to activity A = λ·n on the reachable set.
//
// Complexity:
//   - Time O(nnz(C) + nnz(C⁻¹)) at most, Space O(n).
func Evolve(ds *dataset.Dataset, activities map[int]float64, elapsed float64, opts ...Option) (map[int]float64, error) {
	o := gatherOptions(opts...)
	start := time.Now()
	out, err := evolveActivities(ds, activities, elapsed, o)
	o.metrics.observe(ModeFixed, start, len(out), err)

	return out, err
}

func evolveActivities(ds *dataset.Dataset, activities map[int]float64, elapsed float64, o Options) (map[int]float64, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, elapsed)
	}

	lambda := ds.DecayConstants()
	seeds, err := seedIndices(ds, activities)
	if err != nil {
		return nil, err
	}
	n0 := make([]float64, len(lambda))
	var (
		i int
		a float64
	)
	for _, i = range seeds {
		a = activities[i]
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return nil, fmt.Errorf("%w: %s activity %v", ErrInvalidQuantity, nameOf(ds, i), a)
		}
		if a == 0 {
			continue
		}
		if lambda[i] == 0 {
			return nil, fmt.Errorf("%w: %s", ErrStableNuclideActivity, nameOf(ds, i))
		}
		n0[i] = a / lambda[i]
	}

	reach, n, err := propagate(ds, lambda, n0, seeds, elapsed, o)
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(reach))
	for _, i = range reach {
		if lambda[i] == 0 {
			out[i] = 0
			continue
		}
		out[i] = n[i] * lambda[i]
	}

	return out, nil
}

// EvolveNumbers decays atom counts keyed by dataset index by elapsed seconds.
// Unlike Evolve, stable nuclides may be seeded; their counts persist.
func EvolveNumbers(ds *dataset.Dataset, numbers map[int]float64, elapsed float64, opts ...Option) (map[int]float64, error) {
	o := gatherOptions(opts...)
	start := time.Now()
	out, err := evolveNumbers(ds, numbers, elapsed, o)
	o.metrics.observe(ModeFixed, start, len(out), err)

	return out, err
}

func evolveNumbers(ds *dataset.Dataset, numbers map[int]float64, elapsed float64, o Options) (map[int]float64, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, elapsed)
	}

	lambda := ds.DecayConstants()
	seeds, err := seedIndices(ds, numbers)
	if err != nil {
		return nil, err
	}
	n0 := make([]float64, len(lambda))
	for _, i := range seeds {
		v := numbers[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s count %v", ErrInvalidQuantity, nameOf(ds, i), v)
		}
		n0[i] = v
	}

	reach, n, err := propagate(ds, lambda, n0, seeds, elapsed, o)
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(reach))
	for _, i := range reach {
		out[i] = n[i]
	}

	return out, nil
}

// propagate returns the reachable set of seeds and n(t) = C·diag(e^(−λt))·C⁻¹·n₀.
// Zero elapsed time returns n₀ untouched.
func propagate(ds *dataset.Dataset, lambda, n0 []float64, seeds []int, elapsed float64, o Options) ([]int, []float64, error) {
	reach, err := ds.C().Reach(seeds)
	if err != nil {
		return nil, nil, err
	}
	if elapsed == 0 {
		return reach, n0, nil
	}

	v, err := mulVec(o, ds.CInverse(), ds.CInverseRows(), n0)
	if err != nil {
		return nil, nil, err
	}
	var (
		j int
		e float64
	)
	for j = range v {
		if v[j] == 0 {
			continue
		}
		// Underflow saturates to 0; only a backwards step can overflow.
		e = math.Exp(-lambda[j] * elapsed)
		if math.IsInf(e, 1) {
			return nil, nil, fmt.Errorf("%w: %s over %v s", ErrExponentOverflow, nameOf(ds, j), elapsed)
		}
		v[j] *= e
	}

	n, err := mulVec(o, ds.C(), ds.CRows(), v)
	if err != nil {
		return nil, nil, err
	}
	for _, j = range reach {
		if math.IsNaN(n[j]) || math.IsInf(n[j], 0) {
			return nil, nil, fmt.Errorf("%w: %s over %v s", ErrExponentOverflow, nameOf(ds, j), elapsed)
		}
	}

	return reach, n, nil
}

// mulVec picks the serial column product or the row-block parallel one.
func mulVec(o Options, cols *matrix.CSC, rows *matrix.CSR, x []float64) ([]float64, error) {
	if o.workers > 1 {
		return matrix.MulVecParallel(o.ctx, rows, x, matrix.WithWorkers(o.workers))
	}
	if err := o.ctx.Err(); err != nil {
		return nil, err
	}

	return matrix.MulVec(cols, x)
}

// seedIndices returns the keys of q in ascending order after a range check.
func seedIndices[V any](ds *dataset.Dataset, q map[int]V) ([]int, error) {
	seeds := make([]int, 0, len(q))
	for i := range q {
		if i < 0 || i >= ds.Len() {
			return nil, fmt.Errorf("%w: index %d of %d", nuclide.ErrUnknownNuclide, i, ds.Len())
		}
		seeds = append(seeds, i)
	}
	sort.Ints(seeds)

	return seeds, nil
}

func nameOf(ds *dataset.Dataset, i int) string {
	name, err := ds.NuclideAt(i)
	if err != nil {
		return fmt.Sprintf("#%d", i)
	}

	return name
}
