// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/matrix"
)

func TestNewCSC_Validation(t *testing.T) {
	for _, tc := range []struct {
		name   string
		rows   int
		cols   int
		colPtr []int
		rowIdx []int
		values []float64
		want   error
	}{
		{"zero rows", 0, 2, []int{0, 0, 0}, nil, nil, matrix.ErrInvalidDimensions},
		{"short ptr", 2, 2, []int{0, 1}, []int{0}, []float64{1}, matrix.ErrMalformedStorage},
		{"bad origin", 2, 2, []int{1, 1, 1}, []int{0}, []float64{1}, matrix.ErrMalformedStorage},
		{"decreasing ptr", 2, 2, []int{0, 2, 1}, []int{0}, []float64{1}, matrix.ErrMalformedStorage},
		{"values length", 2, 2, []int{0, 1, 1}, []int{0}, []float64{1, 2}, matrix.ErrMalformedStorage},
		{"row out of range", 2, 2, []int{0, 1, 1}, []int{2}, []float64{1}, matrix.ErrOutOfRange},
		{"unsorted rows", 2, 2, []int{0, 2, 2}, []int{1, 0}, []float64{1, 1}, matrix.ErrMalformedStorage},
		{"nan", 2, 2, []int{0, 1, 1}, []int{0}, []float64{math.NaN()}, matrix.ErrNaNInf},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrix.NewCSC(tc.rows, tc.cols, tc.colPtr, tc.rowIdx, tc.values)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	m, err := matrix.NewCSC(2, 2, []int{0, 1, 1}, []int{0}, []float64{math.Inf(1)}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestNewCSC_CopiesInputs(t *testing.T) {
	colPtr := []int{0, 1, 2}
	rowIdx := []int{0, 1}
	values := []float64{3, 4}
	m, err := matrix.NewCSC(2, 2, colPtr, rowIdx, values)
	require.NoError(t, err)
	values[0] = 99
	rowIdx[1] = 0

	v, _ := m.At(0, 0)
	assert.Equal(t, 3.0, v)
	v, _ = m.At(1, 1)
	assert.Equal(t, 4.0, v)

	_, vals, err := m.Column(0)
	require.NoError(t, err)
	vals[0] = -1
	v, _ = m.At(0, 0)
	assert.Equal(t, 3.0, v)
}

func TestNewCSCFromTriplets(t *testing.T) {
	m, err := matrix.NewCSCFromTriplets(3, 3, []matrix.Triplet{
		{Row: 2, Col: 0, Value: 5},
		{Row: 0, Col: 0, Value: 1},
		{Row: 1, Col: 2, Value: 0}, // dropped
		{Row: 1, Col: 1, Value: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, [][]float64{{1, 0, 0}, {0, 2, 0}, {5, 0, 0}}, m.Dense())
	assert.Equal(t, "CSC 3x3 nnz=3 [(0,0)=1 (2,0)=5 (1,1)=2]", m.String())

	colPtr, rowIdx, values := m.Parts()
	assert.Equal(t, []int{0, 2, 3, 3}, colPtr)
	assert.Equal(t, []int{0, 2, 1}, rowIdx)
	assert.Equal(t, []float64{1, 5, 2}, values)

	kept, err := matrix.NewCSCFromTriplets(2, 2, []matrix.Triplet{{Row: 0, Col: 1, Value: 0}}, matrix.WithKeepZeros())
	require.NoError(t, err)
	assert.Equal(t, 1, kept.NNZ())

	_, err = matrix.NewCSCFromTriplets(2, 2, []matrix.Triplet{{Row: 0, Col: 0, Value: 1}, {Row: 0, Col: 0, Value: 2}})
	assert.ErrorIs(t, err, matrix.ErrDuplicateEntry)

	_, err = matrix.NewCSCFromTriplets(2, 2, []matrix.Triplet{{Row: 0, Col: 2, Value: 1}})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestCSC_AtAndReach(t *testing.T) {
	m := MustCSC(t, [][]float64{
		{1, 0, 0, 0},
		{2, 1, 0, 0},
		{3, 4, 1, 0},
		{0, 0, 0, 1},
	})
	_, err := m.At(4, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	reach, err := m.Reach([]int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, reach)

	reach, err = m.Reach([]int{3, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, reach)

	_, err = m.Reach([]int{9})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestCSC_ToCSR(t *testing.T) {
	m := MustCSC(t, [][]float64{
		{1, 0, 7},
		{2, 1, 0},
		{3, 4, 1},
	})
	r := m.ToCSR()
	assert.Equal(t, m.NNZ(), r.NNZ())
	var i, j int
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			a, err := m.At(i, j)
			require.NoError(t, err)
			b, err := r.At(i, j)
			require.NoError(t, err)
			assert.Equal(t, a, b, "(%d,%d)", i, j)
		}
	}
	cols, vals, err := r.Row(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, cols)
	assert.Equal(t, []float64{3, 4, 1}, vals)
}

func TestRatCSC(t *testing.T) {
	m := MustRatCSC(t, [][]string{
		{"1", "0"},
		{"-1/3", "1"},
	})
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "-1/3", v.RatString())
	v.SetInt64(5) // copies never alias storage
	v, _ = m.At(1, 0)
	assert.Equal(t, "-1/3", v.RatString())

	f, err := m.Float()
	require.NoError(t, err)
	got, _ := f.At(1, 0)
	assert.InDelta(t, -1.0/3.0, got, 1e-16)

	reach, err := m.Reach([]int{0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, reach)

	_, err = matrix.NewRatCSC(2, 2, []int{0, 1, 1}, []int{0}, []*big.Rat{nil})
	assert.ErrorIs(t, err, matrix.ErrMalformedStorage)

	tiny := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), 2000))
	under, err := matrix.NewRatCSCFromTriplets(1, 1, []matrix.RatTriplet{{Row: 0, Col: 0, Value: tiny}})
	require.NoError(t, err)
	ff, err := under.Float()
	require.NoError(t, err)
	assert.Equal(t, 0, ff.NNZ())
}
