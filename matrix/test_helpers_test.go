// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for constructors and kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/matrix"
)

// MustCSC builds a CSC from a dense row-major literal or fails the test.
func MustCSC(t testing.TB, rows [][]float64) *matrix.CSC {
	t.Helper()
	var ts []matrix.Triplet
	for i, row := range rows {
		for j, v := range row {
			if v != 0 {
				ts = append(ts, matrix.Triplet{Row: i, Col: j, Value: v})
			}
		}
	}
	m, err := matrix.NewCSCFromTriplets(len(rows), len(rows[0]), ts)
	require.NoError(t, err)

	return m
}

// MustRatCSC builds a RatCSC from a dense literal of "p/q" strings ("" or "0" = empty).
func MustRatCSC(t testing.TB, rows [][]string) *matrix.RatCSC {
	t.Helper()
	var ts []matrix.RatTriplet
	for i, row := range rows {
		for j, s := range row {
			if s == "" || s == "0" {
				continue
			}
			r, ok := new(big.Rat).SetString(s)
			require.True(t, ok, s)
			ts = append(ts, matrix.RatTriplet{Row: i, Col: j, Value: r})
		}
	}
	m, err := matrix.NewRatCSCFromTriplets(len(rows), len(rows[0]), ts)
	require.NoError(t, err)

	return m
}

// chainLower builds an n×n unit lower-triangular matrix shaped like a
// linear decay chain with an extra branch two steps down, filled with
// deterministic pseudo-random values.
func chainLower(t testing.TB, n int, seed int64) *matrix.CSC {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var ts []matrix.Triplet
	var i, j int
	for j = 0; j < n; j++ {
		ts = append(ts, matrix.Triplet{Row: j, Col: j, Value: 1})
		for i = j + 1; i < n && i <= j+2; i++ {
			ts = append(ts, matrix.Triplet{Row: i, Col: j, Value: rng.Float64()*2 - 1})
		}
	}
	m, err := matrix.NewCSCFromTriplets(n, n, ts)
	require.NoError(t, err)

	return m
}
