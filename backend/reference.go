// SPDX-License-Identifier: MIT

// Package backend: the pure-Go reference implementation.
// Householder reflections for QR, cyclic one-sided Jacobi for SVD and
// classical Jacobi rotations for the symmetric eigenproblem. O(n³)-ish and
// proud of it; this backend exists for portability and cross-checking,
// not speed.

package backend

import (
	"fmt"
	"math"
	"sort"
)

const (
	// refTol is the convergence threshold of the Jacobi iterations.
	refTol = 1e-14

	// refMaxSweeps caps Jacobi sweeps before giving up with
	// ErrDecompositionFailed.
	refMaxSweeps = 100
)

type referenceBackend struct{}

// Reference returns the pure-Go implementation.
func Reference() Backend { return referenceBackend{} }

func (referenceBackend) Name() string { return "reference" }

func (referenceBackend) MatMul(dst, a, b []float64, m, k, n int) {
	for i := 0; i < m; i++ {
		for l := 0; l < k; l++ {
			av := a[i*k+l]
			if av == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				dst[i*n+j] += av * b[l*n+j]
			}
		}
	}
}

// QR via Householder reflections, generalized to rectangular input.
func (referenceBackend) QR(a []float64, m, n int) ([]float64, []float64, error) {
	p := min(m, n)

	// Stage 1: working copies. A becomes R, Q accumulates reflections on
	// the right so that a = Q·R directly.
	A := make([]float64, len(a))
	copy(A, a)
	Q := make([]float64, m*m)
	for i := 0; i < m; i++ {
		Q[i*m+i] = 1
	}
	v := make([]float64, m)

	// Stage 2: one reflection per column
	for k := 0; k < p; k++ {
		norm := 0.0
		for i := k; i < m; i++ {
			norm += A[i*n+k] * A[i*n+k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue // nothing to annihilate in a zero column
		}
		alpha := -math.Copysign(norm, A[k*n+k])
		for i := 0; i < m; i++ {
			v[i] = 0
		}
		for i := k; i < m; i++ {
			v[i] = A[i*n+k]
		}
		v[k] -= alpha
		beta := 0.0
		for i := k; i < m; i++ {
			beta += v[i] * v[i]
		}
		if beta == 0 {
			continue
		}
		tau := 2.0 / beta

		// apply H to A from the left: A[:,j] -= tau·v·(vᵀA[:,j])
		for j := k; j < n; j++ {
			sum := 0.0
			for i := k; i < m; i++ {
				sum += v[i] * A[i*n+j]
			}
			for i := k; i < m; i++ {
				A[i*n+j] -= tau * v[i] * sum
			}
		}
		// accumulate Q from the right: Q[i,:] -= tau·(Q[i,:]·v)·vᵀ
		for i := 0; i < m; i++ {
			sum := 0.0
			for j := k; j < m; j++ {
				sum += Q[i*m+j] * v[j]
			}
			for j := k; j < m; j++ {
				Q[i*m+j] -= tau * sum * v[j]
			}
		}
	}

	// Stage 3: thin extraction; below-diagonal roundoff is zeroed so the
	// result is exactly triangular.
	q := make([]float64, m*p)
	for i := 0; i < m; i++ {
		for j := 0; j < p; j++ {
			q[i*p+j] = Q[i*m+j]
		}
	}
	r := make([]float64, p*n)
	for i := 0; i < p; i++ {
		for j := 0; j < n; j++ {
			if j < i {
				continue
			}
			r[i*n+j] = A[i*n+j]
		}
	}
	return q, r, nil
}

// SVD via cyclic one-sided Jacobi on columns.
func (rb referenceBackend) SVD(a []float64, m, n int) ([]float64, []float64, []float64, error) {
	// Tall input only; wide input goes through the transpose.
	if m < n {
		at := make([]float64, m*n)
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				at[j*m+i] = a[i*n+j]
			}
		}
		ut, s, vtt, err := rb.SVD(at, n, m)
		if err != nil {
			return nil, nil, nil, err
		}
		p := m // = min(m, n)
		// aᵀ = ut·s·vtt  ⇒  a = vttᵀ·s·utᵀ
		u := make([]float64, m*p)
		for i := 0; i < m; i++ {
			for j := 0; j < p; j++ {
				u[i*p+j] = vtt[j*m+i]
			}
		}
		vt := make([]float64, p*n)
		for i := 0; i < p; i++ {
			for j := 0; j < n; j++ {
				vt[i*n+j] = ut[j*p+i]
			}
		}
		return u, s, vt, nil
	}

	// Stage 1: W starts as a copy of a; V accumulates column rotations.
	W := make([]float64, len(a))
	copy(W, a)
	V := make([]float64, n*n)
	for i := 0; i < n; i++ {
		V[i*n+i] = 1
	}

	// Stage 2: sweep column pairs until all are numerically orthogonal.
	converged := false
	for sweep := 0; sweep < refMaxSweeps && !converged; sweep++ {
		converged = true
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				var app, aqq, apq float64
				for i := 0; i < m; i++ {
					wp, wq := W[i*n+p], W[i*n+q]
					app += wp * wp
					aqq += wq * wq
					apq += wp * wq
				}
				if math.Abs(apq) <= refTol*math.Sqrt(app*aqq) {
					continue
				}
				converged = false
				zeta := (aqq - app) / (2 * apq)
				t := math.Copysign(1/(math.Abs(zeta)+math.Sqrt(1+zeta*zeta)), zeta)
				c := 1 / math.Sqrt(1+t*t)
				s := c * t
				for i := 0; i < m; i++ {
					wp, wq := W[i*n+p], W[i*n+q]
					W[i*n+p] = c*wp - s*wq
					W[i*n+q] = s*wp + c*wq
				}
				for i := 0; i < n; i++ {
					vp, vq := V[i*n+p], V[i*n+q]
					V[i*n+p] = c*vp - s*vq
					V[i*n+q] = s*vp + c*vq
				}
			}
		}
	}
	if !converged {
		return nil, nil, nil, fmt.Errorf("reference SVD %dx%d: %w", m, n, ErrDecompositionFailed)
	}

	// Stage 3: singular values are column norms; sort descending with a
	// deterministic permutation (ties keep the lower original column first).
	s := make([]float64, n)
	for j := 0; j < n; j++ {
		acc := 0.0
		for i := 0; i < m; i++ {
			acc += W[i*n+j] * W[i*n+j]
		}
		s[j] = math.Sqrt(acc)
	}
	order := make([]int, n)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return s[order[a]] > s[order[b]] })

	u := make([]float64, m*n)
	vt := make([]float64, n*n)
	sorted := make([]float64, n)
	for jj, j := range order {
		sorted[jj] = s[j]
		if s[j] > 0 {
			for i := 0; i < m; i++ {
				u[i*n+jj] = W[i*n+j] / s[j]
			}
		}
		for i := 0; i < n; i++ {
			vt[jj*n+i] = V[i*n+j]
		}
	}
	return u, sorted, vt, nil
}

// Eigh via classical Jacobi rotations with largest off-diagonal pivot.
func (referenceBackend) Eigh(a []float64, n int) ([]float64, []float64, error) {
	// Stage 1: working copies
	A := make([]float64, len(a))
	copy(A, a)
	Q := make([]float64, n*n)
	for i := 0; i < n; i++ {
		Q[i*n+i] = 1
	}

	// Stage 2: annihilate the dominant off-diagonal entry until convergence
	maxIter := refMaxSweeps * n * n
	for iter := 0; ; iter++ {
		if iter >= maxIter {
			return nil, nil, fmt.Errorf("reference Eigh %dx%d: %w", n, n, ErrDecompositionFailed)
		}
		p, q, maxOff := 0, 1, 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if off := math.Abs(A[i*n+j]); off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if n < 2 || maxOff < refTol {
			break
		}
		apq := A[p*n+q]
		theta := (A[q*n+q] - A[p*n+p]) / (2 * apq)
		t := math.Copysign(1/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c := 1 / math.Sqrt(t*t+1)
		s := t * c

		// A ← JᵀAJ, touching only rows/columns p and q
		for i := 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip, aiq := A[i*n+p], A[i*n+q]
			A[i*n+p] = c*aip - s*aiq
			A[p*n+i] = A[i*n+p]
			A[i*n+q] = s*aip + c*aiq
			A[q*n+i] = A[i*n+q]
		}
		app, aqq := A[p*n+p], A[q*n+q]
		A[p*n+p] = c*c*app - 2*s*c*apq + s*s*aqq
		A[q*n+q] = s*s*app + 2*s*c*apq + c*c*aqq
		A[p*n+q] = 0
		A[q*n+p] = 0

		// Q ← Q·J, so columns of Q are eigenvectors
		for i := 0; i < n; i++ {
			qip, qiq := Q[i*n+p], Q[i*n+q]
			Q[i*n+p] = c*qip - s*qiq
			Q[i*n+q] = s*qip + c*qiq
		}
	}

	// Stage 3: ascending eigenvalues with a stable column permutation.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return A[order[a]*n+order[a]] < A[order[b]*n+order[b]] })

	vals := make([]float64, n)
	vecs := make([]float64, n*n)
	for jj, j := range order {
		vals[jj] = A[j*n+j]
		for i := 0; i < n; i++ {
			vecs[i*n+jj] = Q[i*n+j]
		}
	}
	return vals, vecs, nil
}
