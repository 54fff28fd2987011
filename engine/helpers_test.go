// SPDX-License-Identifier: MIT

package engine_test

import (
	"context"
	"math"
	"math/big"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/numeric"
)

// MustDataset compiles the shared chain fixture.
func MustDataset(t testing.TB) *dataset.Dataset {
	t.Helper()
	f, err := os.Open("../dataset/testdata/chains.yaml")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	src, err := dataset.ParseSource(f)
	require.NoError(t, err)
	ds, err := dataset.Compile(context.Background(), src)
	require.NoError(t, err)

	return ds
}

// idx resolves a canonical name or fails the test.
func idx(t testing.TB, ds *dataset.Dataset, name string) int {
	t.Helper()
	i, ok := ds.IndexOf(name)
	require.True(t, ok, "nuclide %s", name)

	return i
}

// seconds converts a decimal time in unit to exact and fixed seconds.
func seconds(t testing.TB, ds *dataset.Dataset, value, unit string) (*big.Rat, float64) {
	t.Helper()
	v, err := numeric.ParseExact(value)
	require.NoError(t, err)
	s, err := ds.TimeConverter().ToSeconds(v, unit)
	require.NoError(t, err)
	r, err := s.Rat()
	require.NoError(t, err)

	return r, s.Float64()
}

// assertClose compares two activity maps key by key: zeros must match
// exactly, everything else within rel.
func assertClose(t *testing.T, want, got map[int]float64, rel float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for k, w := range want {
		g, ok := got[k]
		require.True(t, ok, "missing index %d", k)
		if w == 0 || math.Abs(w) < 1e-300 {
			assert.InDelta(t, w, g, 1e-300, "index %d", k)
			continue
		}
		assert.InEpsilon(t, w, g, rel, "index %d", k)
	}
}
