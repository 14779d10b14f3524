// SPDX-License-Identifier: MIT

// Package engine: block-wise symmetric eigendecomposition.
// The input must be block diagonal over a mutually conjugate leg pair with
// neutral total charge, the natural form of a charge-conserving hermitian
// operator. Symmetry of each dense block is the caller's obligation, as
// with every numeric precondition of the dense routines.

package engine

import (
	"fmt"

	"github.com/anton-romen/tensorq/array"
	"github.com/anton-romen/tensorq/backend"
	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/leg"
	"github.com/anton-romen/tensorq/optlevel"
)

// EighResult bundles the eigendecomposition a = U·D·U†.
//
// U and D carry the same legs as the input; U's block at (i, i) holds the
// sector's eigenvectors as columns, D's the eigenvalues on the diagonal,
// ascending. Values lists the eigenvalues per stored sector in key order.
type EighResult struct {
	U      *array.Array
	D      *array.Array
	Values [][]float64
}

// Eigh diagonalizes the block-diagonal symmetric rank-2 array a.
/// Requirements: rank 2 (ErrNotMatrix), mutually conjugate legs with
// identical partitions (leg.ErrIncompatible), neutral total charge and
// diagonal block keys (ErrNotBlockDiagonal).
func Eigh(a *array.Array) (*EighResult, error) {
	defer optlevel.Profile("engine.Eigh")()

	if a.Rank() != 2 {
		return nil, fmt.Errorf("Eigh: rank %d: %w", a.Rank(), ErrNotMatrix)
	}
	rowLeg, _ := a.Leg(0)
	colLeg, _ := a.Leg(1)
	if !rowLeg.Compatible(colLeg) {
		return nil, fmt.Errorf("Eigh: row/column legs not mutually conjugate: %w", leg.ErrIncompatible)
	}
	if !a.Rule().Equal(a.Total(), a.Rule().Identity()) {
		return nil, fmt.Errorf("Eigh: total charge %v not neutral: %w", a.Total(), ErrNotBlockDiagonal)
	}

	be := backend.Selected()
	storeU := block.NewStore()
	storeD := block.NewStore()
	var values [][]float64

	for k := range a.Store().Keys() {
		if k[0] != k[1] {
			return nil, fmt.Errorf("Eigh: off-diagonal block %v: %w", k, ErrNotBlockDiagonal)
		}
		b, _ := a.Store().Get(k)
		n := b.Dim(0)
		vals, vecs, err := be.Eigh(b.Data(), n)
		if err != nil {
			return nil, fmt.Errorf("Eigh: block %v: %w", k, err)
		}

		ublk, _ := block.FromData([]int{n, n}, vecs)
		storeU.Set(k, ublk)

		dd := make([]float64, n*n)
		for i := 0; i < n; i++ {
			dd[i*n+i] = vals[i]
		}
		dblk, _ := block.FromData([]int{n, n}, dd)
		storeD.Set(k, dblk)
		values = append(values, vals)
	}

	legs := []*leg.LegCharge{rowLeg, colLeg}
	u, err := array.New(a.Total(), legs, storeU)
	if err != nil {
		return nil, err
	}
	d, err := array.New(a.Total(), legs, storeD)
	if err != nil {
		return nil, err
	}
	return &EighResult{U: u, D: d, Values: values}, nil
}
