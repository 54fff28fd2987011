// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel should panic on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency. Call sites
// attach context with matrixErrorf / validatorErrorf; callers match with errors.Is.
//
// ERROR PRIORITY (checked in this order by constructors):
// nil -> dimensions -> storage layout -> index range -> NaN/Inf -> structure.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. a vector whose length differs from the matrix column count.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMalformedStorage indicates inconsistent compressed storage arrays:
	// wrong pointer length, decreasing pointers, or unsorted indices.
	ErrMalformedStorage = errors.New("matrix: malformed compressed storage")

	// ErrDuplicateEntry is returned when a triplet list names one cell twice.
	ErrDuplicateEntry = errors.New("matrix: duplicate entry")

	// ErrNotUnitLowerTriangular is returned when a matrix required to be
	// lower triangular with unit diagonal is not.
	ErrNotUnitLowerTriangular = errors.New("matrix: not unit lower triangular")
)
