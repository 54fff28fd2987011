// SPDX-License-Identifier: MIT

// Package matrix - RatCSC storage (compressed sparse column, exact rationals).
//
// RatCSC mirrors CSC for *big.Rat entries. It backs the exact decay engine,
// where matrix entries must stay exact until the final evaluation. Entries
// are never aliased: constructors copy incoming values and accessors return
// fresh *big.Rat copies.
package matrix

import (
	"fmt"
	"math"
	"math/big"
	"sort"
)

const (
	ctxNewRatCSC       = "NewRatCSC"
	ctxRatFromTriplets = "NewRatCSCFromTriplets"
	ctxRatFloat        = "RatCSC.Float"
)

// RatCSC is an immutable compressed-sparse-column matrix of exact rationals.
type RatCSC struct {
	l      layout
	values []*big.Rat
}

// NewRatCSC builds a rows×cols rational matrix from compressed-column arrays.
// A nil value is rejected with ErrMalformedStorage.
//
// Complexity: O(cols + nnz).
func NewRatCSC(rows, cols int, colPtr, rowIdx []int, values []*big.Rat) (*RatCSC, error) {
	if err := validateLayout(cols, rows, colPtr, rowIdx, len(values)); err != nil {
		return nil, matrixErrorf(ctxNewRatCSC, err)
	}
	vals := make([]*big.Rat, len(values))
	for p, v := range values {
		if v == nil {
			return nil, matrixErrorf(ctxNewRatCSC, fmt.Errorf("%w: nil entry %d", ErrMalformedStorage, p))
		}
		vals[p] = new(big.Rat).Set(v)
	}

	return &RatCSC{
		l:      layout{outer: cols, inner: rows, ptr: cloneInts(colPtr), idx: cloneInts(rowIdx)},
		values: vals,
	}, nil
}

// NewRatCSCFromTriplets builds a RatCSC from unordered entries. Zero entries
// are dropped; duplicates fail with ErrDuplicateEntry.
//
// Complexity: O(nnz log nnz).
func NewRatCSCFromTriplets(rows, cols int, ts []RatTriplet) (*RatCSC, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(ctxRatFromTriplets, ErrInvalidDimensions)
	}
	sorted := make([]RatTriplet, 0, len(ts))
	for _, t := range ts {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, matrixErrorf(ctxRatFromTriplets, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, t.Row, t.Col))
		}
		if t.Value == nil {
			return nil, matrixErrorf(ctxRatFromTriplets, fmt.Errorf("%w: nil at (%d,%d)", ErrMalformedStorage, t.Row, t.Col))
		}
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Col != sorted[b].Col {
			return sorted[a].Col < sorted[b].Col
		}

		return sorted[a].Row < sorted[b].Row
	})

	var (
		colPtr = make([]int, cols+1)
		rowIdx = make([]int, 0, len(sorted))
		values = make([]*big.Rat, 0, len(sorted))
	)
	for k, t := range sorted {
		if k > 0 && sorted[k-1].Row == t.Row && sorted[k-1].Col == t.Col {
			return nil, matrixErrorf(ctxRatFromTriplets, fmt.Errorf("%w: (%d,%d)", ErrDuplicateEntry, t.Row, t.Col))
		}
		if t.Value.Sign() == 0 {
			continue
		}
		rowIdx = append(rowIdx, t.Row)
		values = append(values, new(big.Rat).Set(t.Value))
		colPtr[t.Col+1]++
	}
	var j int
	for j = 0; j < cols; j++ {
		colPtr[j+1] += colPtr[j]
	}

	return &RatCSC{l: layout{outer: cols, inner: rows, ptr: colPtr, idx: rowIdx}, values: values}, nil
}

// Rows returns the number of rows.
func (m *RatCSC) Rows() int { return m.l.inner }

// Cols returns the number of columns.
func (m *RatCSC) Cols() int { return m.l.outer }

// NNZ returns the number of stored entries.
func (m *RatCSC) NNZ() int { return len(m.values) }

// At returns a copy of m[i,j]; unstored cells are 0.
func (m *RatCSC) At(i, j int) (*big.Rat, error) {
	if i < 0 || i >= m.l.inner || j < 0 || j >= m.l.outer {
		return nil, fmt.Errorf("RatCSC.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if p := m.l.find(j, i); p >= 0 {
		return new(big.Rat).Set(m.values[p]), nil
	}

	return new(big.Rat), nil
}

// Column returns the row indices and copies of the values stored in column j.
func (m *RatCSC) Column(j int) ([]int, []*big.Rat, error) {
	if j < 0 || j >= m.l.outer {
		return nil, nil, fmt.Errorf("RatCSC.Column(%d): %w", j, ErrOutOfRange)
	}
	lo, hi := m.l.ptr[j], m.l.ptr[j+1]

	return cloneInts(m.l.idx[lo:hi]), cloneRats(m.values[lo:hi]), nil
}

// Parts returns copies of the compressed arrays (colPtr, rowIdx, values).
func (m *RatCSC) Parts() ([]int, []int, []*big.Rat) {
	return cloneInts(m.l.ptr), cloneInts(m.l.idx), cloneRats(m.values)
}

// Reach returns the ascending union of row indices stored in the given columns.
func (m *RatCSC) Reach(cols []int) ([]int, error) {
	out, err := m.l.reach(cols)
	if err != nil {
		return nil, fmt.Errorf("RatCSC.Reach: %w", err)
	}

	return out, nil
}

// Float rounds every entry to the nearest float64 and returns a CSC with the
// same layout. Entries that underflow to zero are dropped unless
// WithKeepZeros is given; entries that overflow fail with ErrNaNInf.
//
// Complexity: O(cols + nnz).
func (m *RatCSC) Float(opts ...Option) (*CSC, error) {
	o := gatherOptions(opts...)
	ts := make([]Triplet, 0, len(m.values))
	var j, p int
	for j = 0; j < m.l.outer; j++ {
		for p = m.l.ptr[j]; p < m.l.ptr[j+1]; p++ {
			f, _ := m.values[p].Float64()
			if math.IsInf(f, 0) {
				return nil, matrixErrorf(ctxRatFloat, fmt.Errorf("%w: (%d,%d)", ErrNaNInf, m.l.idx[p], j))
			}
			ts = append(ts, Triplet{Row: m.l.idx[p], Col: j, Value: f})
		}
	}
	if o.dropZeros {
		return NewCSCFromTriplets(m.l.inner, m.l.outer, ts)
	}

	return NewCSCFromTriplets(m.l.inner, m.l.outer, ts, WithKeepZeros())
}

func cloneRats(s []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(s))
	for k, v := range s {
		out[k] = new(big.Rat).Set(v)
	}

	return out
}
