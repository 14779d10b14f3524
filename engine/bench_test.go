// Package engine_test provides benchmarks for the contraction and
// decomposition hot paths, using deterministic random fill per charge block.
package engine_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/anton-romen/tensorq/array"
	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/charge"
	"github.com/anton-romen/tensorq/engine"
	"github.com/anton-romen/tensorq/leg"
)

// benchSectors are the per-sector block sizes to benchmark; each case builds
// a two-sector U(1) leg of dimension 2n and a block-diagonal rank-2 array.
var benchSectors = []int{32, 64, 128}

// sinks to defeat dead-code elimination
var (
	sinkA *array.Array
	sinkR *engine.SVDResult
)

func benchArray(b *testing.B, n int, seed int64) *array.Array {
	b.Helper()
	l, err := leg.New(charge.U1(), []leg.Sector{
		{Q: charge.Charge{0}, Begin: 0, End: n},
		{Q: charge.Charge{1}, Begin: n, End: 2 * n},
	}, false)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(seed))
	specs := make([]array.BlockSpec, 0, 2)
	for s := 0; s < 2; s++ {
		data := make([]float64, n*n)
		for i := range data {
			data[i] = rng.NormFloat64()
		}
		blk, err := block.FromData([]int{n, n}, data)
		if err != nil {
			b.Fatal(err)
		}
		specs = append(specs, array.BlockSpec{Key: block.Key{s, s}, Block: blk})
	}
	a, err := array.FromBlocks(charge.Charge{0}, []*leg.LegCharge{l, l.Conjugate()}, specs)
	if err != nil {
		b.Fatal(err)
	}
	return a
}

func BenchmarkTensordot(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSectors {
		b.Run(fmt.Sprintf("sector=%d", n), func(b *testing.B) {
			x := benchArray(b, n, 1337)
			y := benchArray(b, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out, err := engine.Tensordot(x, y, []int{1}, []int{0})
				if err != nil {
					b.Fatal(err)
				}
				sinkA = out
			}
		})
	}
}

func BenchmarkSVD(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSectors {
		b.Run(fmt.Sprintf("sector=%d", n), func(b *testing.B) {
			x := benchArray(b, n, 1337)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				res, err := engine.SVD(x, engine.WithMaxStates(n))
				if err != nil {
					b.Fatal(err)
				}
				sinkR = res
			}
		})
	}
}
