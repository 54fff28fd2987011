// SPDX-License-Identifier: MIT

// Package matrix - sparse linear-algebra kernels.
//
// Purpose:
//   - Matrix–vector products that touch stored nonzeros only (MulVec, RatMulVec).
//   - A row-block parallel product over CSR (MulVecParallel).
//   - Inversion of unit lower-triangular matrices by forward substitution
//     (InverseUnitLower, RatInverseUnitLower).
//
// Numeric policy:
//   - Products skip zero vector entries, so a stored entry is never multiplied
//     by 0 and ±Inf entries in x cannot turn into NaN through 0·Inf.
package matrix

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"
)

const (
	opMulVec         = "MulVec"
	opMulVecParallel = "MulVecParallel"
	opRatMulVec      = "RatMulVec"
	opInverse        = "InverseUnitLower"
	opRatInverse     = "RatInverseUnitLower"
)

// matrixErrorf wraps err with an operation tag.
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MulVec computes y = m·x by scattering the columns j with x[j] ≠ 0.
//
// Implementation:
//   - Stage 1: validate m non-nil and len(x) == m.Cols().
//   - Stage 2: for every nonzero x[j], add m[:,j]·x[j] into y.
//
// Complexity:
//   - Time O(rows + Σ_{x[j]≠0} nnz(col j)), Space O(rows).
func MulVec(m *CSC, x []float64) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opMulVec, ErrNilMatrix)
	}
	if err := ValidateVecLen(m, len(x)); err != nil {
		return nil, matrixErrorf(opMulVec, err)
	}

	y := make([]float64, m.l.inner)
	var j, p int
	for j = 0; j < m.l.outer; j++ {
		if x[j] == 0 {
			continue
		}
		for p = m.l.ptr[j]; p < m.l.ptr[j+1]; p++ {
			y[m.l.idx[p]] += m.values[p] * x[j]
		}
	}

	return y, nil
}

// MulVecParallel computes y = m·x over CSR storage with rows split into
// WithWorkers(n) contiguous blocks. Each block is computed by one goroutine
// and written to its own slice of y, so the result is identical to the
// serial product regardless of scheduling.
//
// Implementation:
//   - Stage 1: validate; clamp workers to [1, rows].
//   - Stage 2: errgroup fan-out; each worker gathers Σ_k m[i,k]·x[k] for its rows,
//     skipping x[k] == 0.
//   - Stage 3: wait; a cancelled ctx aborts remaining blocks.
//
// Complexity:
//   - Time O(nnz / workers) wall clock, Space O(rows).
func MulVecParallel(ctx context.Context, m *CSR, x []float64, opts ...Option) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opMulVecParallel, ErrNilMatrix)
	}
	if err := ValidateVecLen(m, len(x)); err != nil {
		return nil, matrixErrorf(opMulVecParallel, err)
	}
	o := gatherOptions(opts...)
	rows := m.l.outer
	if rows == 0 {
		return []float64{}, nil
	}
	workers := o.workers
	if workers > rows {
		workers = rows
	}

	y := make([]float64, rows)
	block := (rows + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	var lo int
	for lo = 0; lo < rows; lo += block {
		from, to := lo, lo+block
		if to > rows {
			to = rows
		}
		g.Go(func() error {
			var (
				i, p int
				sum  float64
			)
			for i = from; i < to; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				sum = 0
				for p = m.l.ptr[i]; p < m.l.ptr[i+1]; p++ {
					if xv := x[m.l.idx[p]]; xv != 0 {
						sum += m.values[p] * xv
					}
				}
				y[i] = sum
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, matrixErrorf(opMulVecParallel, err)
	}

	return y, nil
}

// RatMulVec computes y = m·x exactly. Nil entries of x are treated as zero;
// every entry of y is a fresh non-nil *big.Rat.
//
// Complexity:
//   - Time O(rows + Σ_{x[j]≠0} nnz(col j)) rational operations.
func RatMulVec(m *RatCSC, x []*big.Rat) ([]*big.Rat, error) {
	if m == nil {
		return nil, matrixErrorf(opRatMulVec, ErrNilMatrix)
	}
	if len(x) != m.l.outer {
		return nil, matrixErrorf(opRatMulVec, fmt.Errorf("cols %d, vector %d: %w", m.l.outer, len(x), ErrDimensionMismatch))
	}

	y := make([]*big.Rat, m.l.inner)
	for i := range y {
		y[i] = new(big.Rat)
	}
	var (
		j, p int
		t    = new(big.Rat)
	)
	for j = 0; j < m.l.outer; j++ {
		if x[j] == nil || x[j].Sign() == 0 {
			continue
		}
		for p = m.l.ptr[j]; p < m.l.ptr[j+1]; p++ {
			t.Mul(m.values[p], x[j])
			y[m.l.idx[p]].Add(y[m.l.idx[p]], t)
		}
	}

	return y, nil
}

// InverseUnitLower returns L⁻¹ for a unit lower-triangular L.
//
// Implementation:
//   - Stage 1: ValidateUnitLowerTriangular(L).
//   - Stage 2: for each canonical basis column e_j, forward substitution
//     x = e_j; for k = j..n-1 with x[k] ≠ 0: x[i] −= L[i,k]·x[k] for stored i > k.
//     Column j of L⁻¹ is x; its support is the set reachable from j.
//
// Complexity:
//   - Time O(Σ_j Σ_{k ∈ reach(j)} nnz(col k)), Space O(n) per column.
func InverseUnitLower(l *CSC, opts ...Option) (*CSC, error) {
	if err := ValidateUnitLowerTriangular(l); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := l.l.outer
	var (
		ts   []Triplet
		x    = make([]float64, n)
		j, k int
		p    int
	)
	for j = 0; j < n; j++ {
		for k = range x {
			x[k] = 0
		}
		x[j] = 1
		for k = j; k < n; k++ {
			if x[k] == 0 {
				continue
			}
			for p = l.l.ptr[k] + 1; p < l.l.ptr[k+1]; p++ { // skip the unit diagonal
				x[l.l.idx[p]] -= l.values[p] * x[k]
			}
			ts = append(ts, Triplet{Row: k, Col: j, Value: x[k]})
		}
	}

	return NewCSCFromTriplets(n, n, ts, opts...)
}

// RatInverseUnitLower returns the exact L⁻¹ for a unit lower-triangular L.
// Same algorithm as InverseUnitLower in rational arithmetic.
func RatInverseUnitLower(l *RatCSC) (*RatCSC, error) {
	if err := ValidateRatUnitLowerTriangular(l); err != nil {
		return nil, matrixErrorf(opRatInverse, err)
	}

	n := l.l.outer
	var (
		ts   []RatTriplet
		x    = make([]*big.Rat, n)
		t    = new(big.Rat)
		j, k int
		p    int
	)
	for j = 0; j < n; j++ {
		for k = range x {
			x[k] = nil
		}
		x[j] = big.NewRat(1, 1)
		for k = j; k < n; k++ {
			if x[k] == nil || x[k].Sign() == 0 {
				continue
			}
			for p = l.l.ptr[k] + 1; p < l.l.ptr[k+1]; p++ {
				i := l.l.idx[p]
				if x[i] == nil {
					x[i] = new(big.Rat)
				}
				t.Mul(l.values[p], x[k])
				x[i].Sub(x[i], t)
			}
			ts = append(ts, RatTriplet{Row: k, Col: j, Value: x[k]})
		}
	}

	return NewRatCSCFromTriplets(n, n, ts)
}
