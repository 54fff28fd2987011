// SPDX-License-Identifier: MIT

// Package matrix: shared read-only matrix surface and triplet types.
package matrix

import "math/big"

// Matrix is the read-only surface shared by the float64 storages.
//
// Complexity notes: Rows/Cols/NNZ are O(1); At is O(log nnz(col)) for CSC
// and O(log nnz(row)) for CSR.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// NNZ returns the number of stored entries.
	NNZ() int

	// At retrieves the element at position (i, j); unstored cells are 0.
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)
}

// Triplet is one (row, col, value) entry used to build a CSC.
type Triplet struct {
	Row, Col int
	Value    float64
}

// RatTriplet is one (row, col, value) entry used to build a RatCSC.
type RatTriplet struct {
	Row, Col int
	Value    *big.Rat
}
