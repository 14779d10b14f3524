// SPDX-License-Identifier: MIT

// Package leg: combining two legs into one, and the FusionMap that makes the
// merge invertible. The combined sector order and the in-sector slab layout
// are the determinism anchors the whole reshape machinery rests on.

package leg

import (
	"fmt"
	"sort"

	"github.com/anton-romen/tensorq/charge"
)

// FusedPair records how one (left sector, right sector) source pair lands
// inside the combined leg: which combined sector it fused into, at which
// index offset within that sector, and how many indices its slab spans.
type FusedPair struct {
	Left   int // left source sector id
	Right  int // right source sector id
	Sector int // combined sector id
	Offset int // slab offset inside the combined sector, in indices
	Size   int // slab length = leftSize · rightSize
}

// FusionMap is the bookkeeping produced by CombineWith: it maps every
// (left, right) source-sector pair to its slab in the combined leg and keeps
// references to all three legs, which is exactly what block reconstruction
// after a merge (and the inverse split) need.
type FusionMap struct {
	left     *LegCharge
	right    *LegCharge
	combined *LegCharge
	pairs    []FusedPair // indexed left*right.NumSectors() + right
}

// Left returns the first source leg.
func (m *FusionMap) Left() *LegCharge { return m.left }

// Right returns the second source leg.
func (m *FusionMap) Right() *LegCharge { return m.right }

// Combined returns the merged leg.
func (m *FusionMap) Combined() *LegCharge { return m.combined }

// Pair returns the slab record for source sectors (i, j).
// Returns ErrOutOfRange for invalid sector ids.
// Complexity: O(1).
func (m *FusionMap) Pair(i, j int) (FusedPair, error) {
	nR := m.right.NumSectors()
	if i < 0 || i >= m.left.NumSectors() || j < 0 || j >= nR {
		return FusedPair{}, fmt.Errorf("Pair(%d,%d): %w", i, j, ErrOutOfRange)
	}
	return m.pairs[i*nR+j], nil
}

// Pairs returns all slab records in layout order: grouped by combined sector
// ascending, and inside one sector by ascending (Left, Right).
// The returned slice is freshly allocated.
func (m *FusionMap) Pairs() []FusedPair {
	out := make([]FusedPair, len(m.pairs))
	copy(out, m.pairs)
	sort.Slice(out, func(a, b int) bool {
		if out[a].Sector != out[b].Sector {
			return out[a].Sector < out[b].Sector
		}
		return out[a].Offset < out[b].Offset
	})
	return out
}

// CombineWith merges l and other into a single leg covering
// l.Dim()·other.Dim() indices.
//
// Every (i, j) source-sector pair fuses its effective charges into one
// combined charge; combined sectors are the sorted, deduplicated set of
// those charges (ascending Charge.Compare order), and each combined
// sector's size is the sum of the slab sizes of the pairs that fused into
// it. Slabs inside one combined sector are laid out in ascending (i, j)
// order. The combined leg is normally oriented and stores the fused
// effective charges directly.
//
// Returns charge.ErrRuleMismatch (wrapped in ErrIncompatible) when the legs
// were built over different rules.
// Complexity: O(nL·nR·log(nL·nR)).
func (l *LegCharge) CombineWith(other *LegCharge) (*FusionMap, error) {
	if !charge.Same(l.rule, other.rule) {
		return nil, fmt.Errorf("CombineWith: %s vs %s: %v: %w",
			l.rule.Name(), other.rule.Name(), charge.ErrRuleMismatch, ErrIncompatible)
	}
	nL, nR := len(l.sectors), len(other.sectors)
	pairs := make([]FusedPair, nL*nR)
	fused := make([]charge.Charge, nL*nR)
	for i := 0; i < nL; i++ {
		qi := l.EffectiveCharge(i)
		for j := 0; j < nR; j++ {
			fused[i*nR+j] = l.rule.Fuse(qi, other.EffectiveCharge(j))
		}
	}

	// sorted, deduplicated combined charge set
	order := make([]int, len(fused))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if c := fused[order[a]].Compare(fused[order[b]]); c != 0 {
			return c < 0
		}
		return order[a] < order[b] // ascending (i,j) inside equal charge
	})

	var (
		sectors []Sector
		begin   int
	)
	for k := 0; k < len(order); {
		q := fused[order[k]]
		size := 0
		// one combined sector per distinct charge; consecutive in order
		for ; k < len(order) && fused[order[k]].Compare(q) == 0; k++ {
			p := order[k]
			i, j := p/nR, p%nR
			slab := l.sectors[i].Size() * other.sectors[j].Size()
			pairs[p] = FusedPair{
				Left:   i,
				Right:  j,
				Sector: len(sectors),
				Offset: size,
				Size:   slab,
			}
			size += slab
		}
		sectors = append(sectors, Sector{Q: q, Begin: begin, End: begin + size})
		begin += size
	}

	combined := &LegCharge{rule: l.rule, sectors: sectors, conj: false}
	return &FusionMap{left: l, right: other, combined: combined, pairs: pairs}, nil
}
