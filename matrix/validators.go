// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape/structure checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Structural checks run in O(cols + nnz).

package matrix

import (
	"fmt"
	"reflect"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil, including typed
// nil pointers held in the interface.
//
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if v := reflect.ValueOf(m); v.Kind() == reflect.Ptr && v.IsNil() {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare – Ensures m is non-nil and square.
//
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrNonSquare))
	}

	return nil
}

// ValidateVecLen – Ensures len(x) equals m.Cols(); assumes m is not nil.
//
// Complexity: O(1).
func ValidateVecLen(m Matrix, n int) error {
	if m.Cols() != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("cols %d, vector %d: %w", m.Cols(), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateUnitLowerTriangular – Ensures m is square, every stored entry lies
// on or below the diagonal, and every column starts with a stored 1 on the
// diagonal.
//
// Complexity: O(cols + nnz).
func ValidateUnitLowerTriangular(m *CSC) error {
	if m == nil {
		return validatorErrorf("ValidateUnitLowerTriangular", ErrNilMatrix)
	}
	if err := ValidateSquare(m); err != nil {
		return err
	}

	return unitLower(&m.l, func(p int) bool { return m.values[p] == 1 })
}

// ValidateRatUnitLowerTriangular – RatCSC counterpart of ValidateUnitLowerTriangular.
//
// Complexity: O(cols + nnz).
func ValidateRatUnitLowerTriangular(m *RatCSC) error {
	if m == nil {
		return validatorErrorf("ValidateRatUnitLowerTriangular", ErrNilMatrix)
	}
	if err := ValidateSquare(m); err != nil {
		return err
	}

	return unitLower(&m.l, func(p int) bool { return m.values[p].IsInt() && m.values[p].Num().IsInt64() && m.values[p].Num().Int64() == 1 })
}

// unitLower checks the diagonal of a square layout.
func unitLower(l *layout, isOne func(p int) bool) error {
	const tag = "ValidateUnitLowerTriangular"
	var j, p int
	for j = 0; j < l.outer; j++ {
		p = l.ptr[j]
		if p == l.ptr[j+1] || l.idx[p] != j || !isOne(p) {
			return validatorErrorf(tag, fmt.Errorf("diagonal of column %d: %w", j, ErrNotUnitLowerTriangular))
		}
		// rows are sorted, so the diagonal being first implies no entry above it
	}

	return nil
}
