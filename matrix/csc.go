// SPDX-License-Identifier: MIT

// Package matrix - CSC storage (compressed sparse column, float64).
//
// Purpose:
//   - Hold large, very sparse matrices such as decay-chain eigenvector
//     matrices without materialising zeros.
//   - Guarantee safety at the public surface: At returns errors instead of panicking.
//   - Stay immutable after construction; accessors return copies.
//
// Complexity quicksheet:
//   - NewCSC: O(cols + nnz); NewCSCFromTriplets: O(nnz log nnz);
//     At: O(log nnz(col)); Column: O(nnz(col)); ToCSR: O(rows + cols + nnz).
package matrix

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxNewCSC       = "NewCSC"
	ctxFromTriplets = "NewCSCFromTriplets"
	ctxAt           = "At"
	ctxColumn       = "Column"
	ctxReach        = "Reach"
)

// cscErrorf wraps an error with a uniform CSC context.
func cscErrorf(method string, err error) error {
	return fmt.Errorf("CSC.%s: %w", method, err)
}

// CSC is an immutable compressed-sparse-column matrix.
//   - colPtr[j]..colPtr[j+1] delimits column j inside rowIdx/values.
//   - rowIdx is strictly increasing within a column.
type CSC struct {
	l      layout
	values []float64
}

// Compile-time assertions.
var (
	_ Matrix       = (*CSC)(nil)
	_ fmt.Stringer = (*CSC)(nil)
)

// NewCSC builds a rows×cols matrix from compressed-column arrays.
//
// Implementation:
//   - Stage 1: validate dimensions and layout (validateLayout).
//   - Stage 2: reject NaN/±Inf values under the numeric policy.
//   - Stage 3: copy all inputs so the caller keeps ownership.
//
// Errors:
//   - ErrInvalidDimensions, ErrMalformedStorage, ErrOutOfRange, ErrNaNInf.
//
// Complexity: O(cols + nnz).
func NewCSC(rows, cols int, colPtr, rowIdx []int, values []float64, opts ...Option) (*CSC, error) {
	o := gatherOptions(opts...)
	if err := validateLayout(cols, rows, colPtr, rowIdx, len(values)); err != nil {
		return nil, matrixErrorf(ctxNewCSC, err)
	}
	if o.validateNaNInf {
		for p, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(ctxNewCSC, fmt.Errorf("%w: entry %d", ErrNaNInf, p))
			}
		}
	}
	vals := make([]float64, len(values))
	copy(vals, values)

	return &CSC{
		l:      layout{outer: cols, inner: rows, ptr: cloneInts(colPtr), idx: cloneInts(rowIdx)},
		values: vals,
	}, nil
}

// NewCSCFromTriplets builds a CSC from unordered (row, col, value) entries.
//
// Implementation:
//   - Stage 1: validate dimensions, indices and values.
//   - Stage 2: sort by (col, row); reject duplicates (ErrDuplicateEntry).
//   - Stage 3: drop explicit zeros unless WithKeepZeros was given.
//
// Complexity: O(nnz log nnz).
func NewCSCFromTriplets(rows, cols int, ts []Triplet, opts ...Option) (*CSC, error) {
	o := gatherOptions(opts...)
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(ctxFromTriplets, ErrInvalidDimensions)
	}
	sorted := make([]Triplet, 0, len(ts))
	for _, t := range ts {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, matrixErrorf(ctxFromTriplets, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, t.Row, t.Col))
		}
		if o.validateNaNInf && (math.IsNaN(t.Value) || math.IsInf(t.Value, 0)) {
			return nil, matrixErrorf(ctxFromTriplets, fmt.Errorf("%w: (%d,%d)", ErrNaNInf, t.Row, t.Col))
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
		values = make([]float64, 0, len(sorted))
	)
	for k, t := range sorted {
		if k > 0 && sorted[k-1].Row == t.Row && sorted[k-1].Col == t.Col {
			return nil, matrixErrorf(ctxFromTriplets, fmt.Errorf("%w: (%d,%d)", ErrDuplicateEntry, t.Row, t.Col))
		}
		if o.dropZeros && t.Value == 0 {
			continue
		}
		rowIdx = append(rowIdx, t.Row)
		values = append(values, t.Value)
		colPtr[t.Col+1]++
	}
	var j int
	for j = 0; j < cols; j++ {
		colPtr[j+1] += colPtr[j]
	}

	return &CSC{l: layout{outer: cols, inner: rows, ptr: colPtr, idx: rowIdx}, values: values}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*CSC, error) {
	ts := make([]Triplet, n)
	var i int
	for i = 0; i < n; i++ {
		ts[i] = Triplet{Row: i, Col: i, Value: 1}
	}

	return NewCSCFromTriplets(n, n, ts)
}

// Rows returns the number of rows.
func (m *CSC) Rows() int { return m.l.inner }

// Cols returns the number of columns.
func (m *CSC) Cols() int { return m.l.outer }

// NNZ returns the number of stored entries.
func (m *CSC) NNZ() int { return len(m.values) }

// At returns m[i,j]; cells without a stored entry are 0.
func (m *CSC) At(i, j int) (float64, error) {
	if i < 0 || i >= m.l.inner || j < 0 || j >= m.l.outer {
		return 0, cscErrorf(ctxAt, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}
	if p := m.l.find(j, i); p >= 0 {
		return m.values[p], nil
	}

	return 0, nil
}

// Column returns copies of the row indices and values stored in column j.
func (m *CSC) Column(j int) ([]int, []float64, error) {
	if j < 0 || j >= m.l.outer {
		return nil, nil, cscErrorf(ctxColumn, fmt.Errorf("col %d: %w", j, ErrOutOfRange))
	}
	lo, hi := m.l.ptr[j], m.l.ptr[j+1]
	rows := cloneInts(m.l.idx[lo:hi])
	vals := make([]float64, hi-lo)
	copy(vals, m.values[lo:hi])

	return rows, vals, nil
}

// Parts returns copies of the compressed arrays (colPtr, rowIdx, values).
func (m *CSC) Parts() ([]int, []int, []float64) {
	vals := make([]float64, len(m.values))
	copy(vals, m.values)

	return cloneInts(m.l.ptr), cloneInts(m.l.idx), vals
}

// Reach returns the ascending union of row indices stored in the given columns.
// For an eigenvector matrix C this is the set of nuclides reachable from the
// nuclides of those columns.
func (m *CSC) Reach(cols []int) ([]int, error) {
	out, err := m.l.reach(cols)
	if err != nil {
		return nil, cscErrorf(ctxReach, err)
	}

	return out, nil
}

// Triplets lists the stored entries in column-major order.
func (m *CSC) Triplets() []Triplet {
	out := make([]Triplet, 0, len(m.values))
	var j, p int
	for j = 0; j < m.l.outer; j++ {
		for p = m.l.ptr[j]; p < m.l.ptr[j+1]; p++ {
			out = append(out, Triplet{Row: m.l.idx[p], Col: j, Value: m.values[p]})
		}
	}

	return out
}

// Dense materialises m as a row-major [][]float64. Intended for small
// matrices, diagnostics and tests.
func (m *CSC) Dense() [][]float64 {
	out := make([][]float64, m.l.inner)
	var i, j, p int
	for i = 0; i < m.l.inner; i++ {
		out[i] = make([]float64, m.l.outer)
	}
	for j = 0; j < m.l.outer; j++ {
		for p = m.l.ptr[j]; p < m.l.ptr[j+1]; p++ {
			out[m.l.idx[p]][j] = m.values[p]
		}
	}

	return out
}

// ToCSR returns the same matrix in compressed-row storage.
// Complexity: O(rows + cols + nnz).
func (m *CSC) ToCSR() *CSR {
	t, perm := transposeLayout(m.l)
	vals := make([]float64, len(perm))
	for q, p := range perm {
		vals[q] = m.values[p]
	}

	return &CSR{l: t, values: vals}
}

// String renders shape and stored entries, e.g. "CSC 2x2 nnz=2 [(0,0)=1 (1,1)=1]".
func (m *CSC) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CSC %dx%d nnz=%d [", m.l.inner, m.l.outer, len(m.values))
	for k, t := range m.Triplets() {
		if k > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "(%d,%d)=%g", t.Row, t.Col, t.Value)
	}
	sb.WriteByte(']')

	return sb.String()
}
