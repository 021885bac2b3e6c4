// Package matrix_test provides benchmarks for the product engine and the
// Floyd–Warshall oracle, using deterministic random fill.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/ringpath/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkB bool
)

func mustDense(b *testing.B, r, c int, layout matrix.Layout) *matrix.Dense {
	b.Helper()
	m, err := matrix.NewDense(r, c, layout)
	if err != nil {
		b.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// fillDistances writes a sparse distance matrix: diagonal 0, about 3n edges
// with weights in [1,5), sentinel elsewhere.
func fillDistances(b *testing.B, d *matrix.Dense, seed int64) {
	b.Helper()
	n := d.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := matrix.Sentinel
			if i == j {
				v = 0
			}
			if err := d.Set(i, j, v); err != nil {
				b.Fatal(err)
			}
		}
	}
	rng := rand.New(rand.NewSource(seed))
	for e := 0; e < 3*n; e++ {
		u, v := rng.Intn(n), rng.Intn(n)
		if u == v {
			continue
		}
		if err := d.Set(u, v, 1+rng.Float64()*4); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProduct(b *testing.B) {
	b.ReportAllocs()
	for _, sr := range []matrix.Semiring{matrix.Standard(), matrix.Tropical()} {
		for _, n := range benchSizes {
			b.Run(fmt.Sprintf("%s/n=%d", sr.Name, n), func(b *testing.B) {
				A := mustDense(b, n, n, matrix.RowMajor)
				fillDistances(b, A, 1337)
				B, err := A.Relayout(matrix.ColMajor)
				if err != nil {
					b.Fatal(err)
				}
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					m, err := matrix.Product(A, B, sr)
					if err != nil {
						b.Fatal(err)
					}
					sinkM = m
				}
			})
		}
	}
}

// BenchmarkProduct_Block measures the per-step kernel of a systolic round:
// an (n/p)×n row band times an n×(n/p) column band.
func BenchmarkProduct_Block(b *testing.B) {
	b.ReportAllocs()
	const n = 256
	for _, p := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("p=%d", p), func(b *testing.B) {
			A := mustDense(b, n/p, n, matrix.RowMajor)
			B := mustDense(b, n, n/p, matrix.ColMajor)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Product(A, B, matrix.Tropical())
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkRelayout(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n, matrix.RowMajor)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := A.Relayout(matrix.ColMajor)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkFloydWarshall(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{128, 256} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			src := mustDense(b, n, n, matrix.RowMajor)
			fillDistances(b, src, 777)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				D := src.Clone()
				b.StartTimer()
				if err := matrix.FloydWarshall(D); err != nil {
					b.Fatal(err)
				}
				sinkM = D
			}
		})
	}
}

func BenchmarkEqual(b *testing.B) {
	b.ReportAllocs()
	A := mustDense(b, 256, 256, matrix.RowMajor)
	B, _ := A.Relayout(matrix.ColMajor)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkB = matrix.Equal(A, B)
	}
}
