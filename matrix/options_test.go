// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/decaychain/matrix"
)

func TestWithWorkers_PanicsOnInvalid(t *testing.T) {
	assert.PanicsWithValue(t, "matrix: WithWorkers: workers must be >= 1", func() {
		matrix.WithWorkers(0)
	})
	assert.NotPanics(t, func() { matrix.WithWorkers(1) })
}

func TestDefaults(t *testing.T) {
	assert.True(t, matrix.DefaultValidateNaNInf)
	assert.True(t, matrix.DefaultDropZeros)
	assert.Equal(t, 1, matrix.DefaultWorkers)
}
