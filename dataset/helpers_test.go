// SPDX-License-Identifier: MIT

package dataset_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/dataset"
)

// MustCompile compiles testdata/chains.yaml.
func MustCompile(t testing.TB) *dataset.Dataset {
	t.Helper()
	f, err := os.Open("testdata/chains.yaml")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	src, err := dataset.ParseSource(f)
	require.NoError(t, err)
	ds, err := dataset.Compile(context.Background(), src)
	require.NoError(t, err)

	return ds
}

// compileYAML compiles an inline source document.
func compileYAML(doc string) (*dataset.Dataset, error) {
	src, err := dataset.ParseSource(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	return dataset.Compile(context.Background(), src)
}

// MustIndex resolves a canonical name or fails the test.
func MustIndex(t testing.TB, ds *dataset.Dataset, name string) int {
	t.Helper()
	i, ok := ds.IndexOf(name)
	require.True(t, ok, "nuclide %s", name)

	return i
}
