// SPDX-License-Identifier: MIT

// Package backend: the Backend contract and environment-level selection.

package backend

import (
	"errors"
	"os"
	"sync"
)

// EnvVar is the environment variable consulted (once) to pick the process
// backend.
const EnvVar = "TENSORQ_BACKEND"

// ErrDecompositionFailed indicates that an underlying numeric routine did
// not converge. Distinct from compatibility errors: the inputs were legal,
// the numerics gave up.
var ErrDecompositionFailed = errors.New("backend: decomposition did not converge")

// Backend is the narrow dense linear-algebra surface the engine dispatches
// to. All matrices are flat row-major float64 buffers.
//
// Implementations must be deterministic for fixed inputs and must agree
// with each other up to floating-point rounding.
type Backend interface {
	// Name returns the backend's selection name.
	Name() string

	// MatMul accumulates the product of a (m×k) and b (k×n) into dst (m×n):
	// dst += a·b. dst must be fully allocated by the caller.
	MatMul(dst, a, b []float64, m, k, n int)

	// SVD computes the thin singular value decomposition a = u·diag(s)·vt
	// of a (m×n): u is m×p, s has length p, vt is p×n, p = min(m, n),
	// singular values in descending order.
	// Returns ErrDecompositionFailed on non-convergence.
	SVD(a []float64, m, n int) (u, s, vt []float64, err error)

	// QR computes the thin QR decomposition a = q·r of a (m×n): q is m×p
	// with orthonormal columns, r is p×n upper trapezoidal, p = min(m, n).
	QR(a []float64, m, n int) (q, r []float64, err error)

	// Eigh diagonalizes the symmetric matrix a (n×n): vals holds the n
	// eigenvalues in ascending order, vecs is n×n row-major with column j
	// the eigenvector for vals[j].
	// Returns ErrDecompositionFailed on non-convergence.
	Eigh(a []float64, n int) (vals, vecs []float64, err error)
}

var selected = sync.OnceValue(func() Backend {
	if os.Getenv(EnvVar) == "reference" {
		return Reference()
	}
	return Gonum()
})

// Selected returns the process backend, resolving EnvVar on first call.
func Selected() Backend { return selected() }
