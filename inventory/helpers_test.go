// SPDX-License-Identifier: MIT

package inventory_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/inventory"
	"github.com/katalvlaran/decaychain/nuclide"
	"github.com/katalvlaran/decaychain/numeric"
)

// MustDataset compiles the shared chain fixture under the given name.
func MustDataset(t testing.TB, name string) *dataset.Dataset {
	t.Helper()
	f, err := os.Open("../dataset/testdata/chains.yaml")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	src, err := dataset.ParseSource(f)
	require.NoError(t, err)
	src.Name = name
	ds, err := dataset.Compile(context.Background(), src)
	require.NoError(t, err)

	return ds
}

// MustInventory builds a fixed inventory from Bq activities keyed by name.
func MustInventory(t testing.TB, ds *dataset.Dataset, activities map[string]float64) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.FromActivities(ds, activities)
	require.NoError(t, err)

	return inv
}

// activity reads one activity as float64 or fails the test.
func activity(t testing.TB, inv *inventory.Inventory, name string) float64 {
	t.Helper()
	v, err := inv.Activity(nuclide.Name(name))
	require.NoError(t, err)

	return v.Float64()
}

func exact(t testing.TB, s string) numeric.Value {
	t.Helper()
	v, err := numeric.ParseExact(s)
	require.NoError(t, err)

	return v
}
