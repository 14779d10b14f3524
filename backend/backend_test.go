// SPDX-License-Identifier: MIT

package backend_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anton-romen/tensorq/backend"
)

const tol = 1e-10

// fixed, reproducible test matrix (3×4)
var a34 = []float64{
	2, -1, 0, 3,
	1, 4, -2, 1,
	0, 1, 5, -1,
}

func both() []backend.Backend {
	return []backend.Backend{backend.Gonum(), backend.Reference()}
}

func matMulDense(a, b []float64, m, k, n int) []float64 {
	out := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for l := 0; l < k; l++ {
			for j := 0; j < n; j++ {
				out[i*n+j] += a[i*k+l] * b[l*n+j]
			}
		}
	}
	return out
}

func requireClose(t *testing.T, want, got []float64, msg string) {
	t.Helper()
	require.Equal(t, len(want), len(got), msg)
	for i := range want {
		require.InDelta(t, want[i], got[i], tol, "%s: element %d", msg, i)
	}
}

func TestMatMul_Accumulates(t *testing.T) {
	t.Parallel()

	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6, 7, 8}
	want := []float64{1 + 19, 1 + 22, 1 + 43, 1 + 50} // dst preloaded with ones

	for _, be := range both() {
		dst := []float64{1, 1, 1, 1}
		be.MatMul(dst, a, b, 2, 2, 2)
		requireClose(t, want, dst, be.Name())
	}
}

func TestQR_Reconstructs(t *testing.T) {
	t.Parallel()

	for _, shape := range []struct{ m, n int }{{3, 4}, {4, 3}, {3, 3}} {
		m, n := shape.m, shape.n
		in := a34[:m*n]
		p := min(m, n)
		for _, be := range both() {
			q, r, err := be.QR(in, m, n)
			require.NoError(t, err, be.Name())

			// q·r == a
			requireClose(t, in, matMulDense(q, r, m, p, n), be.Name())

			// qᵀq == I
			for j1 := 0; j1 < p; j1++ {
				for j2 := 0; j2 < p; j2++ {
					dot := 0.0
					for i := 0; i < m; i++ {
						dot += q[i*p+j1] * q[i*p+j2]
					}
					want := 0.0
					if j1 == j2 {
						want = 1.0
					}
					require.InDelta(t, want, dot, tol, "%s: qᵀq[%d,%d] %dx%d", be.Name(), j1, j2, m, n)
				}
			}

			// r upper triangular
			for i := 0; i < p; i++ {
				for j := 0; j < i; j++ {
					require.Zero(t, r[i*n+j], "%s: r[%d,%d]", be.Name(), i, j)
				}
			}
		}
	}
}

func TestSVD_ReconstructsAndAgrees(t *testing.T) {
	t.Parallel()

	for _, shape := range []struct{ m, n int }{{3, 4}, {4, 3}, {3, 3}} {
		m, n := shape.m, shape.n
		in := a34[:m*n]
		p := min(m, n)

		var prev []float64
		for _, be := range both() {
			u, s, vt, err := be.SVD(in, m, n)
			require.NoError(t, err, be.Name())
			require.Len(t, s, p)

			// descending singular values
			for i := 1; i < p; i++ {
				require.GreaterOrEqual(t, s[i-1], s[i], be.Name())
			}

			// u·diag(s)·vt == a
			us := make([]float64, m*p)
			for i := 0; i < m; i++ {
				for j := 0; j < p; j++ {
					us[i*p+j] = u[i*p+j] * s[j]
				}
			}
			requireClose(t, in, matMulDense(us, vt, m, p, n), be.Name())

			// backends agree on the spectrum
			if prev != nil {
				requireClose(t, prev, s, "spectrum gonum vs reference")
			}
			prev = s
		}
	}
}

func TestEigh_ReconstructsSymmetric(t *testing.T) {
	t.Parallel()

	sym := []float64{
		4, 1, -2,
		1, 2, 0,
		-2, 0, 3,
	}
	n := 3
	for _, be := range both() {
		vals, vecs, err := be.Eigh(sym, n)
		require.NoError(t, err, be.Name())

		// ascending order
		for i := 1; i < n; i++ {
			require.LessOrEqual(t, vals[i-1], vals[i], be.Name())
		}

		// A·v_j == λ_j·v_j
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				av := 0.0
				for k := 0; k < n; k++ {
					av += sym[i*n+k] * vecs[k*n+j]
				}
				require.InDelta(t, vals[j]*vecs[i*n+j], av, tol, "%s: (Av)[%d] col %d", be.Name(), i, j)
			}
		}
	}
}

func TestEigh_TrivialSizeOne(t *testing.T) {
	t.Parallel()

	for _, be := range both() {
		vals, vecs, err := be.Eigh([]float64{7}, 1)
		require.NoError(t, err, be.Name())
		require.Equal(t, []float64{7}, vals)
		require.InDelta(t, 1.0, math.Abs(vecs[0]), tol)
	}
}

func TestSelected_DefaultsToGonum(t *testing.T) {
	// not parallel: reads process state
	require.Equal(t, "gonum", backend.Selected().Name())
}
