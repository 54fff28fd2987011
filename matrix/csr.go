// SPDX-License-Identifier: MIT

// Package matrix - CSR storage (compressed sparse row, float64).
//
// CSR is produced from a CSC with ToCSR and serves row-oriented kernels:
// MulVecParallel splits the rows into contiguous blocks so that every worker
// writes a disjoint part of the output.
package matrix

import "fmt"

// CSR is an immutable compressed-sparse-row matrix.
type CSR struct {
	l      layout // outer = rows, inner = cols
	values []float64
}

var _ Matrix = (*CSR)(nil)

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.l.outer }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.l.inner }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.values) }

// At returns m[i,j]; cells without a stored entry are 0.
func (m *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= m.l.outer || j < 0 || j >= m.l.inner {
		return 0, fmt.Errorf("CSR.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if p := m.l.find(i, j); p >= 0 {
		return m.values[p], nil
	}

	return 0, nil
}

// Row returns copies of the column indices and values stored in row i.
func (m *CSR) Row(i int) ([]int, []float64, error) {
	if i < 0 || i >= m.l.outer {
		return nil, nil, fmt.Errorf("CSR.Row(%d): %w", i, ErrOutOfRange)
	}
	lo, hi := m.l.ptr[i], m.l.ptr[i+1]
	vals := make([]float64, hi-lo)
	copy(vals, m.values[lo:hi])

	return cloneInts(m.l.idx[lo:hi]), vals, nil
}
