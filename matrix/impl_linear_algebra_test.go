// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the sparse linear-algebra kernels.
package matrix_test

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/matrix"
)

func TestMulVec(t *testing.T) {
	m := MustCSC(t, [][]float64{
		{1, 0, 0},
		{2, 1, 0},
		{0, 3, 1},
	})
	y, err := matrix.MulVec(m, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 9}, y)

	_, err = matrix.MulVec(m, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.MulVec(nil, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// A zero vector entry must never be multiplied into an infinite product.
func TestMulVec_SkipsZeroEntries(t *testing.T) {
	m := MustCSC(t, [][]float64{
		{1, 0},
		{-1, 1},
	})
	y, err := matrix.MulVec(m, []float64{math.Inf(1), 0})
	require.NoError(t, err)
	assert.True(t, math.IsInf(y[0], 1))
	assert.True(t, math.IsInf(y[1], -1))

	r := m.ToCSR()
	y, err = matrix.MulVecParallel(context.Background(), r, []float64{0, math.Inf(1)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, y[0])
	assert.True(t, math.IsInf(y[1], 1))
}

func TestMulVecParallel_MatchesSerial(t *testing.T) {
	const n = 97
	m := chainLower(t, n, 7)
	r := m.ToCSR()
	x := make([]float64, n)
	var i int
	for i = 0; i < n; i++ {
		if i%3 != 0 {
			x[i] = float64(i) / 10
		}
	}
	want, err := matrix.MulVec(m, x)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 4, 16, 200} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := matrix.MulVecParallel(context.Background(), r, x, matrix.WithWorkers(workers))
			require.NoError(t, err)
			require.Len(t, got, n)
			for i := range want {
				assert.InDelta(t, want[i], got[i], 1e-12, "row %d", i)
			}
		})
	}
}

func TestMulVecParallel_Cancelled(t *testing.T) {
	m := chainLower(t, 64, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := matrix.MulVecParallel(ctx, m.ToCSR(), make([]float64, 64), matrix.WithWorkers(4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRatMulVec(t *testing.T) {
	m := MustRatCSC(t, [][]string{
		{"1", "0"},
		{"1/2", "1"},
	})
	y, err := matrix.RatMulVec(m, []*big.Rat{big.NewRat(2, 3), nil})
	require.NoError(t, err)
	assert.Equal(t, "2/3", y[0].RatString())
	assert.Equal(t, "1/3", y[1].RatString())

	_, err = matrix.RatMulVec(m, []*big.Rat{nil})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestInverseUnitLower(t *testing.T) {
	l := MustCSC(t, [][]float64{
		{1, 0, 0},
		{-1, 1, 0},
		{0.5, -2, 1},
	})
	inv, err := matrix.InverseUnitLower(l)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{1, 0, 0},
		{1, 1, 0},
		{1.5, 2, 1},
	}, inv.Dense())

	_, err = matrix.InverseUnitLower(MustCSC(t, [][]float64{{2, 0}, {0, 1}}))
	assert.ErrorIs(t, err, matrix.ErrNotUnitLowerTriangular)
	_, err = matrix.InverseUnitLower(MustCSC(t, [][]float64{{1, 1}, {0, 1}}))
	assert.ErrorIs(t, err, matrix.ErrNotUnitLowerTriangular)
	_, err = matrix.InverseUnitLower(MustCSC(t, [][]float64{{1, 0, 0}, {0, 1, 0}}))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.RatInverseUnitLower(MustRatCSC(t, [][]string{{"1", "0", "0"}, {"0", "1", "0"}}))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestInverseUnitLower_Product(t *testing.T) {
	const n = 40
	l := chainLower(t, n, 11)
	inv, err := matrix.InverseUnitLower(l)
	require.NoError(t, err)

	var j int
	for j = 0; j < n; j++ {
		e := make([]float64, n)
		e[j] = 1
		col, err := matrix.MulVec(inv, e)
		require.NoError(t, err)
		back, err := matrix.MulVec(l, col)
		require.NoError(t, err)
		for i := range back {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, back[i], 1e-9, "(%d,%d)", i, j)
		}
	}
}

func TestRatInverseUnitLower(t *testing.T) {
	l := MustRatCSC(t, [][]string{
		{"1", "", ""},
		{"-1/3", "1", ""},
		{"1/7", "-2/5", "1"},
	})
	inv, err := matrix.RatInverseUnitLower(l)
	require.NoError(t, err)

	// exact identity L·L⁻¹ = I, column by column
	var i, j int
	for j = 0; j < 3; j++ {
		_, vals, err := inv.Column(j)
		require.NoError(t, err)
		rows, _, err := inv.Column(j)
		require.NoError(t, err)
		x := make([]*big.Rat, 3)
		for k, r := range rows {
			x[r] = vals[k]
		}
		y, err := matrix.RatMulVec(l, x)
		require.NoError(t, err)
		for i = 0; i < 3; i++ {
			want := big.NewRat(0, 1)
			if i == j {
				want = big.NewRat(1, 1)
			}
			assert.Equal(t, 0, y[i].Cmp(want), "(%d,%d)", i, j)
		}
	}

	bad := MustRatCSC(t, [][]string{{"2", ""}, {"", "1"}})
	_, err = matrix.RatInverseUnitLower(bad)
	assert.ErrorIs(t, err, matrix.ErrNotUnitLowerTriangular)
}
