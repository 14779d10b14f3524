// SPDX-License-Identifier: MIT

// Package engine: block-wise thin QR decomposition.
// Same bond construction as SVD, no truncation: the bond keeps
// min(rows, cols) states per factored block.

package engine

import (
	"fmt"

	"github.com/anton-romen/tensorq/array"
	"github.com/anton-romen/tensorq/backend"
	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/leg"
	"github.com/anton-romen/tensorq/optlevel"
)

// QRResult bundles the factors of a = Q·R: Q has legs (row leg, bond†),
// orthonormal columns per block and a's total charge; R has legs
// (bond, column leg), is upper trapezoidal per block and charge neutral.
type QRResult struct {
	Q *array.Array
	R *array.Array
}

// QR factorizes the rank-2 array a block by block.
// Returns ErrNotMatrix for non-rank-2 input and ErrEmptyBond for an array
// with no stored blocks.
func QR(a *array.Array) (*QRResult, error) {
	defer optlevel.Profile("engine.QR")()

	if a.Rank() != 2 {
		return nil, fmt.Errorf("QR: rank %d: %w", a.Rank(), ErrNotMatrix)
	}
	be := backend.Selected()

	var facts []*factored
	for k := range a.Store().Keys() {
		b, _ := a.Store().Get(k)
		sh := b.Shape()
		q, r, err := be.QR(b.Data(), sh[0], sh[1])
		if err != nil {
			return nil, fmt.Errorf("QR: block %v: %w", k, err)
		}
		p := min(sh[0], sh[1])
		facts = append(facts, &factored{key: k.Clone(), rows: sh[0], cols: sh[1], u: q, vt: r, kept: p})
	}

	rowLeg, _ := a.Leg(0)
	colLeg, _ := a.Leg(1)
	bond, err := bondLeg(a.Rule(), colLeg, facts)
	if err != nil {
		return nil, fmt.Errorf("QR: %w", err)
	}
	bondConj := bond.Conjugate()

	storeQ := block.NewStore()
	storeR := block.NewStore()
	sector := 0
	for _, f := range facts {
		qblk, _ := block.FromData([]int{f.rows, f.kept}, f.u)
		storeQ.Set(block.Key{f.key[0], sector}, qblk)

		rblk, _ := block.FromData([]int{f.kept, f.cols}, f.vt)
		storeR.Set(block.Key{sector, f.key[1]}, rblk)
		sector++
	}

	q, err := array.New(a.Total(), []*leg.LegCharge{rowLeg, bondConj}, storeQ)
	if err != nil {
		return nil, err
	}
	r, err := array.New(a.Rule().Identity(), []*leg.LegCharge{bond, colLeg}, storeR)
	if err != nil {
		return nil, err
	}
	return &QRResult{Q: q, R: r}, nil
}
