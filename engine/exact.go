// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/matrix"
	"github.com/katalvlaran/decaychain/numeric"
)

const (
	// guardBits is the starting headroom above the requested precision.
	guardBits = 64
	// maxDoublings bounds the adaptive precision at guard·2^maxDoublings.
	maxDoublings = 5
)

// EvolveExact decays activities by elapsed seconds in exact rational
// arithmetic and returns every reachable activity rounded to sig
// significant figures as an exact value.
//
// In exact form the solution is a finite sum of terms c·2^(−r·t), where
// r = 1/T½ and c is rational. Terms sharing an exponent are merged exactly
// first, so contributions that cancel are recognised as zero instead of
// leaving rounding residue. The surviving sum is evaluated with binary
// precision raised until two successive evaluations agree at sig figures.
//
// Implementation:
//   - Stage 1: validate sig, time and seeds; ñ = A / r per seed.
//   - Stage 2: v = C⁻¹·ñ exactly.
//   - Stage 3: for every reachable j collect terms r_j·C[j,i]·v_i·2^(−r_i·t).
//   - Stage 4: merge equal exponents, drop zero coefficients, evaluate.
//
// Complexity:
//   - Time O(nnz(C⁻¹) + nnz(C)) rational operations plus one adaptive
//     evaluation per reachable nuclide.
func EvolveExact(ds *dataset.Dataset, activities map[int]numeric.Value, elapsed *big.Rat, sig int, opts ...Option) (map[int]numeric.Value, error) {
	o := gatherOptions(opts...)
	start := time.Now()
	out, err := evolveExact(ds, activities, elapsed, sig, o)
	o.metrics.observe(ModeExact, start, len(out), err)

	return out, err
}

func evolveExact(ds *dataset.Dataset, activities map[int]numeric.Value, elapsed *big.Rat, sig int, o Options) (map[int]numeric.Value, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	ex, ok := ds.Exact()
	if !ok {
		return nil, fmt.Errorf("%w: dataset %s", ErrPrecisionUnavailable, ds.Name())
	}
	if err := numeric.ValidateSignificantFigures(sig); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignificantFigures, err)
	}
	if elapsed == nil {
		return nil, fmt.Errorf("%w: missing", ErrInvalidTime)
	}

	size := ex.Len()
	rates := make([]*big.Rat, size)
	var i int
	for i = 0; i < size; i++ {
		rates[i] = ex.Rate(i)
	}

	// Stage 1: ñ = A / r. The ln2 of λ = r·ln2 cancels against exp(−λt).
	seeds, err := seedIndices(ds, activities)
	if err != nil {
		return nil, err
	}
	nt := make([]*big.Rat, size)
	for _, i = range seeds {
		q := activities[i]
		if !q.Valid() {
			return nil, fmt.Errorf("%w: %s activity %s", ErrInvalidQuantity, nameOf(ds, i), q)
		}
		a, err := q.Rat()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidQuantity, nameOf(ds, i), err)
		}
		if a.Sign() == 0 {
			continue
		}
		if rates[i].Sign() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrStableNuclideActivity, nameOf(ds, i))
		}
		nt[i] = a.Quo(a, rates[i])
	}

	reach, err := ex.C().Reach(seeds)
	if err != nil {
		return nil, err
	}

	// Stage 2.
	v, err := matrix.RatMulVec(ex.CInverse(), nt)
	if err != nil {
		return nil, err
	}

	// Stage 3: column i of C scatters v_i into every row it stores.
	sums := make(map[int]*series, len(reach))
	for _, i = range reach {
		sums[i] = newSeries()
	}
	var (
		rows []int
		vals []*big.Rat
		k    int
	)
	for i = 0; i < size; i++ {
		if v[i].Sign() == 0 {
			continue
		}
		exponent := new(big.Rat).Mul(rates[i], elapsed)
		if rows, vals, err = ex.C().Column(i); err != nil {
			return nil, err
		}
		for k = range rows {
			s, ok := sums[rows[k]]
			if !ok || rates[rows[k]].Sign() == 0 {
				continue
			}
			coef := new(big.Rat).Mul(rates[rows[k]], vals[k])
			coef.Mul(coef, v[i])
			s.add(exponent, coef)
		}
	}

	// Stage 4.
	out := make(map[int]numeric.Value, len(reach))
	for _, i = range reach {
		if err = o.ctx.Err(); err != nil {
			return nil, err
		}
		r, err := sums[i].evaluate(sig)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", nameOf(ds, i), err)
		}
		out[i] = numeric.Exact(r)
	}

	return out, nil
}

// term is c·2^(−x).
type term struct {
	exponent *big.Rat
	coef     *big.Rat
}

// series is a sum of terms with pairwise distinct exponents.
type series struct {
	terms []term
	index map[string]int
}

func newSeries() *series { return &series{index: make(map[string]int)} }

// add merges coef into the term with the same exponent, exactly.
func (s *series) add(exponent, coef *big.Rat) {
	key := exponent.RatString()
	if k, ok := s.index[key]; ok {
		s.terms[k].coef.Add(s.terms[k].coef, coef)
		return
	}
	s.index[key] = len(s.terms)
	s.terms = append(s.terms, term{exponent: exponent, coef: new(big.Rat).Set(coef)})
}

// evaluate returns the sum rounded to sig significant figures.
//
// Implementation:
//   - Stage 1: drop zero coefficients; no terms left is an exact zero.
//   - Stage 2: with every exponent zero the sum is rational; round it directly.
//   - Stage 3: evaluate at SigBits(sig)+guardBits bits, doubling until two
//     successive results print identically at sig figures.
//   - Stage 4: a result that never settles and stays below the rounding
//     noise of its largest term is a cancellation to zero.
func (s *series) evaluate(sig int) (*big.Rat, error) {
	live := s.terms[:0:0]
	var t term
	for _, t = range s.terms {
		if t.coef.Sign() != 0 {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return new(big.Rat), nil
	}

	rational := true
	for _, t = range live {
		if t.exponent.Sign() != 0 {
			rational = false
			break
		}
	}
	if rational {
		sum := new(big.Rat)
		for _, t = range live {
			sum.Add(sum, t.coef)
		}
		return numeric.RoundRatSig(sum, sig)
	}

	var (
		base    = numeric.SigBits(sig) + guardBits
		top     = base << maxDoublings
		prec    uint
		prev    string
		val     *big.Float
		largest *big.Float
		err     error
	)
	for prec = base; prec <= top; prec *= 2 {
		if val, largest, err = sumAt(live, prec); err != nil {
			return nil, err
		}
		text, err := numeric.FormatSig(val, sig)
		if err != nil {
			return nil, err
		}
		if text == prev {
			return numeric.RoundSig(val, sig)
		}
		prev = text
	}

	// Not settled at the top precision: residue smaller than 2^(−top/2)
	// of the largest term is noise.
	bound := new(big.Float).SetPrec(top).SetMantExp(largest, -int(top/2))
	if new(big.Float).Abs(val).Cmp(bound) <= 0 {
		return new(big.Rat), nil
	}

	return numeric.RoundSig(val, sig)
}

// sumAt evaluates Σ c·2^(−x) at prec bits and returns the sum together with
// the largest absolute term.
func sumAt(terms []term, prec uint) (*big.Float, *big.Float, error) {
	sum := new(big.Float).SetPrec(prec)
	largest := new(big.Float).SetPrec(prec)
	for _, t := range terms {
		p, err := numeric.Pow2Neg(t.exponent, prec)
		if err != nil {
			if errors.Is(err, numeric.ErrExponentOverflow) {
				return nil, nil, fmt.Errorf("%w: 2^(−%s)", ErrExponentOverflow, t.exponent.RatString())
			}
			return nil, nil, err
		}
		p.Mul(p, new(big.Float).SetPrec(prec).SetRat(t.coef))
		sum.Add(sum, p)
		if p.Sign() < 0 {
			p.Neg(p)
		}
		if p.Cmp(largest) > 0 {
			largest.Set(p)
		}
	}

	return sum, largest, nil
}
