// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for the sparse kernels, using
// deterministic chain-shaped lower-triangular matrices.
package matrix_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/decaychain/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{256, 1024, 4096}

// sinks to defeat dead-code elimination
var (
	sinkV []float64
	sinkM *matrix.CSC
)

func BenchmarkMulVec(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := chainLower(b, n, 1337)
			x := make([]float64, n)
			for i := range x {
				x[i] = 1
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				y, err := matrix.MulVec(m, x)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = y
			}
		})
	}
}

func BenchmarkMulVecParallel(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			r := chainLower(b, n, 1337).ToCSR()
			x := make([]float64, n)
			for i := range x {
				x[i] = 1
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				y, err := matrix.MulVecParallel(context.Background(), r, x, matrix.WithWorkers(4))
				if err != nil {
					b.Fatal(err)
				}
				sinkV = y
			}
		})
	}
}

func BenchmarkInverseUnitLower(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes[:2] {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := chainLower(b, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				inv, err := matrix.InverseUnitLower(m)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = inv
			}
		})
	}
}
