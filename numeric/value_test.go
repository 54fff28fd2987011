// SPDX-License-Identifier: MIT

package numeric_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/numeric"
)

func TestValue_KindPropagation(t *testing.T) {
	third, err := numeric.ExactFrac(1, 3)
	require.NoError(t, err)
	two := numeric.ExactInt(2)

	sum := third.Add(two)
	assert.True(t, sum.IsExact())
	assert.Equal(t, "7/3", sum.String())

	mixed := third.Add(numeric.Fixed(1))
	assert.False(t, mixed.IsExact())
	assert.InDelta(t, 4.0/3.0, mixed.Float64(), 1e-15)

	prod := two.Mul(third)
	assert.Equal(t, "2/3", prod.String())

	diff := two.Sub(third)
	assert.Equal(t, "5/3", diff.String())
	assert.Equal(t, "-5/3", diff.Neg().String())
}

func TestValue_Quo(t *testing.T) {
	q, err := numeric.ExactInt(1).Quo(numeric.ExactInt(4))
	require.NoError(t, err)
	assert.Equal(t, "1/4", q.String())

	_, err = numeric.ExactInt(1).Quo(numeric.ExactInt(0))
	assert.ErrorIs(t, err, numeric.ErrDivideByZero)

	_, err = numeric.Fixed(1).Quo(numeric.Fixed(0))
	assert.ErrorIs(t, err, numeric.ErrDivideByZero)

	f, err := numeric.Fixed(1).Quo(numeric.ExactInt(4))
	require.NoError(t, err)
	assert.Equal(t, numeric.KindFixed, f.Kind())
	assert.Equal(t, 0.25, f.Float64())

	_, err = numeric.ExactFrac(1, 0)
	assert.ErrorIs(t, err, numeric.ErrDivideByZero)
}

func TestFromFloatDecimal(t *testing.T) {
	v, err := numeric.FromFloatDecimal(12.32)
	require.NoError(t, err)
	assert.Equal(t, "308/25", v.String())

	_, err = numeric.FromFloatDecimal(math.NaN())
	assert.ErrorIs(t, err, numeric.ErrInvalidValue)
	_, err = numeric.FromFloatDecimal(math.Inf(-1))
	assert.ErrorIs(t, err, numeric.ErrInvalidValue)

	r, err := numeric.Fixed(0.1).Rat()
	require.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(big.NewRat(1, 10)))
}

func TestParseExact(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"12.32", "308/25"},
		{"1/3", "1/3"},
		{"1.5e3", "1500"},
		{"-2", "-2"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			v, err := numeric.ParseExact(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.String())
		})
	}

	_, err := numeric.ParseExact("twelve")
	assert.ErrorIs(t, err, numeric.ErrInvalidValue)
}

func TestValue_Predicates(t *testing.T) {
	assert.True(t, numeric.Value{}.IsZero())
	assert.True(t, numeric.Value{}.Valid())
	assert.False(t, numeric.Fixed(math.Inf(1)).Valid())
	assert.False(t, numeric.Fixed(math.NaN()).Valid())
	assert.Equal(t, -1, numeric.Fixed(-3).Sign())
	assert.Equal(t, 1, numeric.ExactInt(3).Sign())
	assert.True(t, numeric.Exact(nil).IsZero())
	assert.True(t, numeric.ExactInt(2).Equal(numeric.ExactInt(2)))
	assert.False(t, numeric.ExactInt(2).Equal(numeric.Fixed(2)))
	assert.Equal(t, "exact", numeric.KindExact.String())
	assert.Equal(t, "fixed", numeric.KindFixed.String())
}

func TestExact_DoesNotAlias(t *testing.T) {
	r := big.NewRat(1, 2)
	v := numeric.Exact(r)
	r.SetInt64(7)
	assert.Equal(t, "1/2", v.String())

	out, err := v.Rat()
	require.NoError(t, err)
	out.SetInt64(9)
	assert.Equal(t, "1/2", v.String())
}
