// SPDX-License-Identifier: MIT

// Package engine: tensordot contraction.
// Both operands are permuted so contracted legs sit adjacently (a: last,
// b: first); every stored block then flattens to a matrix and matching
// sector groups multiply through the backend.

package engine

import (
	"fmt"

	"github.com/anton-romen/tensorq/array"
	"github.com/anton-romen/tensorq/backend"
	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/charge"
	"github.com/anton-romen/tensorq/leg"
	"github.com/anton-romen/tensorq/optlevel"
)

// Tensordot contracts a with b over the leg pairs (axesA[i], axesB[i]).
// Each contracted pair must be mutually conjugate with identical partitions
// (leg.LegCharge.Compatible); violation is an explicit leg.ErrIncompatible,
// never a silent zero result. The result carries the free legs of a
// followed by the free legs of b, and the fused total charge.
//
// Cost is proportional to the number of matching sector pairs; the whole
// point of charge-block sparsity.
//
// A contraction consuming every leg has no array result; use Inner.
func Tensordot(a, b *array.Array, axesA, axesB []int) (*array.Array, error) {
	defer optlevel.Profile("engine.Tensordot")()

	pa, pb, freeA, freeB, err := prepare(a, b, axesA, axesB)
	if err != nil {
		return nil, err
	}
	if freeA+freeB == 0 {
		return nil, fmt.Errorf("Tensordot: %w", ErrNoFreeLegs)
	}
	nc := len(axesA)
	be := backend.Selected()

	// group b's blocks by the sectors of the contracted (leading) legs
	groups := make(map[string][]block.Key)
	for k := range pb.Store().Keys() {
		pfx := k[:nc].String()
		groups[pfx] = append(groups[pfx], k.Clone())
	}

	outLegs := append(pa.Legs()[:freeA:freeA], pb.Legs()[nc:]...)
	store := block.NewStore()
	for ka := range pa.Store().Keys() {
		ba, _ := pa.Store().Get(ka)
		matches := groups[ka[freeA:].String()]
		if len(matches) == 0 {
			continue
		}
		shapeA := ba.Shape()
		m, kdim := sizeOf(shapeA[:freeA]), sizeOf(shapeA[freeA:])

		for _, kb := range matches {
			bb, _ := pb.Store().Get(kb)
			shapeB := bb.Shape()
			n := sizeOf(shapeB[nc:])

			outKey := append(ka[:freeA].Clone(), kb[nc:]...)
			dst, ok := store.Get(outKey)
			if !ok {
				shape := append(append([]int{}, shapeA[:freeA]...), shapeB[nc:]...)
				dst, err = block.New(shape...)
				if err != nil {
					return nil, fmt.Errorf("Tensordot: %w", err)
				}
				store.Set(outKey, dst)
			}
			// accumulate: colliding sector pairs sum into one output block
			be.MatMul(dst.Data(), ba.Data(), bb.Data(), m, kdim, n)
		}
	}

	total := a.Rule().Fuse(a.Total(), b.Total())
	return array.New(total, outLegs, store)
}

// Inner fully contracts a with b to a scalar: every leg of both operands
// must appear in the axis lists.
func Inner(a, b *array.Array, axesA, axesB []int) (float64, error) {
	defer optlevel.Profile("engine.Inner")()

	pa, pb, freeA, freeB, err := prepare(a, b, axesA, axesB)
	if err != nil {
		return 0, err
	}
	if freeA+freeB != 0 {
		return 0, fmt.Errorf("Inner: %d free legs remain: %w", freeA+freeB, ErrBadAxes)
	}

	acc := 0.0
	for ka := range pa.Store().Keys() {
		bb, ok := pb.Store().Get(ka)
		if !ok {
			continue
		}
		ba, _ := pa.Store().Get(ka)
		ad, bd := ba.Data(), bb.Data()
		for i, v := range ad {
			acc += v * bd[i]
		}
	}
	return acc, nil
}

// prepare validates the axis specification and returns both operands with
// contracted legs moved into place (a: trailing, b: leading), plus the free
// leg counts.
func prepare(a, b *array.Array, axesA, axesB []int) (pa, pb *array.Array, freeA, freeB int, err error) {
	if !charge.Same(a.Rule(), b.Rule()) {
		return nil, nil, 0, 0, fmt.Errorf("contract: rule %s vs %s: %v: %w",
			a.Rule().Name(), b.Rule().Name(), charge.ErrRuleMismatch, leg.ErrIncompatible)
	}
	if len(axesA) != len(axesB) {
		return nil, nil, 0, 0, fmt.Errorf("contract: %d vs %d contracted axes: %w", len(axesA), len(axesB), ErrBadAxes)
	}
	if err := checkAxes(axesA, a.Rank()); err != nil {
		return nil, nil, 0, 0, err
	}
	if err := checkAxes(axesB, b.Rank()); err != nil {
		return nil, nil, 0, 0, err
	}
	for i := range axesA {
		la, _ := a.Leg(axesA[i])
		lb, _ := b.Leg(axesB[i])
		if !la.Compatible(lb) {
			return nil, nil, 0, 0, fmt.Errorf("contract: leg %d of a vs leg %d of b: %w", axesA[i], axesB[i], leg.ErrIncompatible)
		}
	}

	freeA = a.Rank() - len(axesA)
	freeB = b.Rank() - len(axesB)

	permA := make([]int, 0, a.Rank())
	inA := make([]bool, a.Rank())
	for _, x := range axesA {
		inA[x] = true
	}
	for i := 0; i < a.Rank(); i++ {
		if !inA[i] {
			permA = append(permA, i)
		}
	}
	permA = append(permA, axesA...)

	permB := make([]int, 0, b.Rank())
	permB = append(permB, axesB...)
	inB := make([]bool, b.Rank())
	for _, x := range axesB {
		inB[x] = true
	}
	for i := 0; i < b.Rank(); i++ {
		if !inB[i] {
			permB = append(permB, i)
		}
	}

	if pa, err = a.PermuteLegs(permA); err != nil {
		return nil, nil, 0, 0, err
	}
	if pb, err = b.PermuteLegs(permB); err != nil {
		return nil, nil, 0, 0, err
	}
	return pa, pb, freeA, freeB, nil
}

// checkAxes rejects out-of-range and repeated axes.
func checkAxes(axes []int, rank int) error {
	seen := make([]bool, rank)
	for _, x := range axes {
		if x < 0 || x >= rank {
			return fmt.Errorf("contract: axis %d outside rank %d: %w", x, rank, ErrBadAxes)
		}
		if seen[x] {
			return fmt.Errorf("contract: axis %d repeated: %w", x, ErrBadAxes)
		}
		seen[x] = true
	}
	return nil
}

func sizeOf(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
