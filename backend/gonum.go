// SPDX-License-Identifier: MIT

// Package backend: the gonum implementation. BLAS dgemm for products,
// LAPACK-derived factorizations from gonum/mat.

package backend

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type gonumBackend struct{}

// Gonum returns the gonum-backed implementation (the default).
func Gonum() Backend { return gonumBackend{} }

func (gonumBackend) Name() string { return "gonum" }

func (gonumBackend) MatMul(dst, a, b []float64, m, k, n int) {
	ga := blas64.General{Rows: m, Cols: k, Stride: k, Data: a}
	gb := blas64.General{Rows: k, Cols: n, Stride: n, Data: b}
	gc := blas64.General{Rows: m, Cols: n, Stride: n, Data: dst}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 1, gc)
}

func (gonumBackend) SVD(a []float64, m, n int) ([]float64, []float64, []float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(m, n, a), mat.SVDThin); !ok {
		return nil, nil, nil, fmt.Errorf("gonum SVD %dx%d: %w", m, n, ErrDecompositionFailed)
	}
	p := min(m, n)
	s := svd.Values(nil)

	var um, vm mat.Dense
	svd.UTo(&um)
	svd.VTo(&vm) // V, n×p; we hand back Vᵀ

	u := make([]float64, m*p)
	for i := 0; i < m; i++ {
		for j := 0; j < p; j++ {
			u[i*p+j] = um.At(i, j)
		}
	}
	vt := make([]float64, p*n)
	for i := 0; i < p; i++ {
		for j := 0; j < n; j++ {
			vt[i*n+j] = vm.At(j, i)
		}
	}
	return u, s, vt, nil
}

func (gonumBackend) QR(a []float64, m, n int) ([]float64, []float64, error) {
	var qr mat.QR
	qr.Factorize(mat.NewDense(m, n, a))
	p := min(m, n)

	var qm, rm mat.Dense
	qr.QTo(&qm) // m×m
	qr.RTo(&rm) // m×n upper trapezoidal

	q := make([]float64, m*p)
	for i := 0; i < m; i++ {
		for j := 0; j < p; j++ {
			q[i*p+j] = qm.At(i, j)
		}
	}
	r := make([]float64, p*n)
	for i := 0; i < p; i++ {
		for j := 0; j < n; j++ {
			r[i*n+j] = rm.At(i, j)
		}
	}
	return q, r, nil
}

func (gonumBackend) Eigh(a []float64, n int) ([]float64, []float64, error) {
	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(n, a), true); !ok {
		return nil, nil, fmt.Errorf("gonum Eigh %dx%d: %w", n, n, ErrDecompositionFailed)
	}
	vals := es.Values(nil) // ascending

	var vm mat.Dense
	es.VectorsTo(&vm)
	vecs := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			vecs[i*n+j] = vm.At(i, j)
		}
	}
	return vals, vecs, nil
}
