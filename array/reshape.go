// SPDX-License-Identifier: MIT

// Package array: leg combine and split.
// CombineLegs merges two adjacent legs through leg.CombineWith; each block's
// two merged axes collapse into a slab placed at the FusionMap offset
// inside the combined sector. Colliding combined keys lay their slabs
// side by side at disjoint offsets; contributions are never summed.
// SplitLeg is the exact inverse and recovers bit-identical block data.

package array

import (
	"fmt"

	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/leg"
	"github.com/anton-romen/tensorq/optlevel"
)

// CombineLegs merges legs pos and pos+1 into a single leg, returning the
// combined array and the FusionMap needed to invert the merge.
// Returns ErrOutOfRange for an invalid position and leg.ErrIncompatible on
// rule mismatch between the two legs.
// Complexity: O(sector pairs + stored elements).
func (a *Array) CombineLegs(pos int) (*Array, *leg.FusionMap, error) {
	defer optlevel.Profile("array.CombineLegs")()

	if pos < 0 || pos+1 >= len(a.legs) {
		return nil, nil, fmt.Errorf("CombineLegs(%d): rank %d: %w", pos, len(a.legs), ErrOutOfRange)
	}
	fm, err := a.legs[pos].CombineWith(a.legs[pos+1])
	if err != nil {
		return nil, nil, fmt.Errorf("CombineLegs(%d): %w", pos, err)
	}

	newLegs := make([]*leg.LegCharge, 0, len(a.legs)-1)
	newLegs = append(newLegs, a.legs[:pos]...)
	newLegs = append(newLegs, fm.Combined())
	newLegs = append(newLegs, a.legs[pos+2:]...)

	store := block.NewStore()
	for k := range a.store.Keys() {
		b, _ := a.store.Get(k)
		pair, err := fm.Pair(k[pos], k[pos+1])
		if err != nil {
			return nil, nil, fmt.Errorf("CombineLegs(%d): block %v: %w", pos, k, err)
		}

		nk := make(block.Key, 0, len(k)-1)
		nk = append(nk, k[:pos]...)
		nk = append(nk, pair.Sector)
		nk = append(nk, k[pos+2:]...)

		sec, _ := fm.Combined().Sector(pair.Sector)
		dst, ok := store.Get(nk)
		if !ok {
			shape := make([]int, 0, len(k)-1)
			bs := b.Shape()
			shape = append(shape, bs[:pos]...)
			shape = append(shape, sec.Size())
			shape = append(shape, bs[pos+2:]...)
			dst, err = block.New(shape...)
			if err != nil {
				return nil, nil, fmt.Errorf("CombineLegs(%d): %w", pos, err)
			}
			store.Set(nk, dst)
		}
		copySlab(dst, b, pos, pair.Offset, pair.Size, sec.Size(), false)
	}

	out, err := New(a.total, newLegs, store)
	if err != nil {
		return nil, nil, err
	}
	return out, fm, nil
}

// SplitLeg splits leg pos back into the two legs recorded in fm, which must
// be the FusionMap of the combine being inverted (the leg at pos must Equal
// fm.Combined()). Slabs that are identically zero (sector pairs the
// combine never touched) produce no block.
// Complexity: O(sector pairs + stored elements).
func (a *Array) SplitLeg(pos int, fm *leg.FusionMap) (*Array, error) {
	defer optlevel.Profile("array.SplitLeg")()

	if pos < 0 || pos >= len(a.legs) {
		return nil, fmt.Errorf("SplitLeg(%d): rank %d: %w", pos, len(a.legs), ErrOutOfRange)
	}
	if !a.legs[pos].Equal(fm.Combined()) {
		return nil, fmt.Errorf("SplitLeg(%d): leg does not match fusion map: %w", pos, leg.ErrIncompatible)
	}

	newLegs := make([]*leg.LegCharge, 0, len(a.legs)+1)
	newLegs = append(newLegs, a.legs[:pos]...)
	newLegs = append(newLegs, fm.Left(), fm.Right())
	newLegs = append(newLegs, a.legs[pos+1:]...)

	// index pairs by combined sector once
	bySector := make(map[int][]leg.FusedPair)
	for _, p := range fm.Pairs() {
		bySector[p.Sector] = append(bySector[p.Sector], p)
	}

	store := block.NewStore()
	for k := range a.store.Keys() {
		b, _ := a.store.Get(k)
		sec, _ := fm.Combined().Sector(k[pos])
		for _, pair := range bySector[k[pos]] {
			ls, _ := fm.Left().Sector(pair.Left)
			rs, _ := fm.Right().Sector(pair.Right)

			shape := make([]int, 0, len(k)+1)
			bs := b.Shape()
			shape = append(shape, bs[:pos]...)
			shape = append(shape, ls.Size(), rs.Size())
			shape = append(shape, bs[pos+1:]...)
			slab, err := block.New(shape...)
			if err != nil {
				return nil, fmt.Errorf("SplitLeg(%d): %w", pos, err)
			}
			copySlab(b, slab, pos, pair.Offset, pair.Size, sec.Size(), true)
			if slab.MaxAbs() == 0 {
				continue // never materialized by the combine
			}

			nk := make(block.Key, 0, len(k)+1)
			nk = append(nk, k[:pos]...)
			nk = append(nk, pair.Left, pair.Right)
			nk = append(nk, k[pos+1:]...)
			store.Set(nk, slab)
		}
	}
	return New(a.total, newLegs, store)
}

// copySlab moves data between a combined block and a source/slab block.
// Both are viewed as [pre, axis, post]: combined has axis length secSize,
// the other has axis length slabSize sitting at offset inside the combined
// axis. extract=false scatters src→combined, extract=true gathers
// combined→slab. Layouts are row-major, so pre and post collapse to two
// plain strides.
func copySlab(combined, other *block.Block, pos, offset, slabSize, secSize int, extract bool) {
	cShape := combined.Shape()
	pre := 1
	for i := 0; i < pos; i++ {
		pre *= cShape[i]
	}
	post := 1
	for i := pos + 1; i < len(cShape); i++ {
		post *= cShape[i]
	}
	cd := combined.Data()
	od := other.Data()
	for p := 0; p < pre; p++ {
		for r := 0; r < slabSize; r++ {
			cBase := (p*secSize + offset + r) * post
			oBase := (p*slabSize + r) * post
			if extract {
				copy(od[oBase:oBase+post], cd[cBase:cBase+post])
			} else {
				copy(cd[cBase:cBase+post], od[oBase:oBase+post])
			}
		}
	}
}
