// SPDX-License-Identifier: MIT

// Package matrix - compressed index layout shared by CSC, CSR and RatCSC.
//
// Layout (column-compressed; CSR is the same with rows and columns swapped):
//   - ptr has outer+1 entries, ptr[0] == 0, non-decreasing, ptr[outer] == nnz.
//   - idx[ptr[k]:ptr[k+1]] lists the inner indices of slice k, strictly increasing.
//
// Determinism:
//   - Every traversal visits slices in ascending order and entries in storage order.
package matrix

import (
	"fmt"
	"sort"
)

// layout is the index part of a compressed matrix.
type layout struct {
	outer, inner int   // number of compressed slices and their length
	ptr          []int // len outer+1
	idx          []int // len nnz
}

// validateLayout checks ptr/idx against the declared shape.
//
// Implementation:
//   - Stage 1: pointer array length, origin, monotonicity and terminal value.
//   - Stage 2: per slice, inner indices in range and strictly increasing.
//
// Complexity: O(outer + nnz).
func validateLayout(outer, inner int, ptr, idx []int, nvals int) error {
	if outer <= 0 || inner <= 0 {
		return ErrInvalidDimensions
	}
	if len(ptr) != outer+1 || ptr[0] != 0 || ptr[outer] != len(idx) || len(idx) != nvals {
		return fmt.Errorf("%w: ptr len %d, nnz %d, values %d", ErrMalformedStorage, len(ptr), len(idx), nvals)
	}

	var k, p int
	for k = 0; k < outer; k++ {
		if ptr[k] > ptr[k+1] {
			return fmt.Errorf("%w: decreasing pointer at %d", ErrMalformedStorage, k)
		}
	}
	for k = 0; k < outer; k++ {
		for p = ptr[k]; p < ptr[k+1]; p++ {
			if idx[p] < 0 || idx[p] >= inner {
				return fmt.Errorf("%w: index %d in slice %d", ErrOutOfRange, idx[p], k)
			}
			if p > ptr[k] && idx[p] <= idx[p-1] {
				return fmt.Errorf("%w: unsorted indices in slice %d", ErrMalformedStorage, k)
			}
		}
	}

	return nil
}

// find returns the storage position of inner index i in slice k, or -1.
// Complexity: O(log nnz(k)).
func (l *layout) find(k, i int) int {
	lo, hi := l.ptr[k], l.ptr[k+1]
	p := lo + sort.SearchInts(l.idx[lo:hi], i)
	if p < hi && l.idx[p] == i {
		return p
	}

	return -1
}

// reach returns, in ascending order, the union of inner indices stored in
// the given slices.
//
// Complexity: O(Σ nnz(k) + r log r) for r returned indices.
func (l *layout) reach(slices []int) ([]int, error) {
	seen := make(map[int]struct{})
	var p int
	for _, k := range slices {
		if k < 0 || k >= l.outer {
			return nil, fmt.Errorf("%w: slice %d", ErrOutOfRange, k)
		}
		for p = l.ptr[k]; p < l.ptr[k+1]; p++ {
			seen[l.idx[p]] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)

	return out, nil
}

// transposeLayout builds the swapped compression of l and the permutation
// perm such that the new storage position q holds old position perm[q].
//
// Complexity: O(outer + inner + nnz).
func transposeLayout(l layout) (layout, []int) {
	var (
		nnz   = len(l.idx)
		count = make([]int, l.inner+1)
		t     = layout{outer: l.inner, inner: l.outer, ptr: make([]int, l.inner+1), idx: make([]int, nnz)}
		perm  = make([]int, nnz)
		k, p  int
	)
	for p = 0; p < nnz; p++ {
		count[l.idx[p]+1]++
	}
	for k = 0; k < l.inner; k++ {
		count[k+1] += count[k]
	}
	copy(t.ptr, count)

	next := make([]int, l.inner)
	copy(next, count[:l.inner])
	for k = 0; k < l.outer; k++ { // ascending outer ⇒ sorted inner in the result
		for p = l.ptr[k]; p < l.ptr[k+1]; p++ {
			q := next[l.idx[p]]
			next[l.idx[p]]++
			t.idx[q] = k
			perm[q] = p
		}
	}

	return t, perm
}

// cloneInts returns a copy of s.
func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)

	return out
}
