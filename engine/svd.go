// SPDX-License-Identifier: MIT

// Package engine: block-wise singular value decomposition with truncation.
// Each admissible block factorizes independently; the fresh bond leg
// carries one sector per factored block, charged so that U inherits the
// input's total charge while S and V† are charge neutral.

package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/anton-romen/tensorq/array"
	"github.com/anton-romen/tensorq/backend"
	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/charge"
	"github.com/anton-romen/tensorq/leg"
	"github.com/anton-romen/tensorq/optlevel"
)

// SVDResult bundles the factors of a = U·S·V†.
//
// U has legs (row leg of a, bond†) and a's total charge; S is the diagonal
// spectrum array with legs (bond, bond†) and neutral charge; Vt has legs
// (bond, column leg of a) and neutral charge. Contracting U·S·Vt over the
// adjacent bond pairs reproduces a (exactly when untruncated).
type SVDResult struct {
	U  *array.Array
	S  *array.Array
	Vt *array.Array

	// Values holds the kept singular values per bond sector, descending
	// within each sector, in bond sector order.
	Values [][]float64

	// TruncErr is the squared weight of the discarded spectrum, Σ s².
	TruncErr float64
}

// factored is one block factorization awaiting assembly.
type factored struct {
	key      block.Key // source block key (i, j)
	rows     int
	cols     int
	u, s, vt []float64
	kept     int
}

// SVD factorizes the rank-2 array a block by block and reassembles the
// three factors around a fresh bond leg, truncated per opts.
//
// Truncation is deterministic: candidates are ordered by descending
// singular value, ties broken by ascending (bond sector, position within
// sector); the cutoff discards values strictly below it; the per-sector and
// global caps apply afterwards, in that order. Bond sectors whose every
// value is discarded vanish from the bond leg.
//
// Returns ErrNotMatrix for non-rank-2 input, ErrEmptyBond when nothing
// survives truncation, and backend.ErrDecompositionFailed when the dense
// routine does not converge.
func SVD(a *array.Array, opts ...TruncOption) (*SVDResult, error) {
	defer optlevel.Profile("engine.SVD")()

	if a.Rank() != 2 {
		return nil, fmt.Errorf("SVD: rank %d: %w", a.Rank(), ErrNotMatrix)
	}
	o := gatherTruncOptions(opts)
	be := backend.Selected()

	// Stage 1: factor every stored block, in deterministic key order.
	var facts []*factored
	for k := range a.Store().Keys() {
		b, _ := a.Store().Get(k)
		sh := b.Shape()
		u, s, vt, err := be.SVD(b.Data(), sh[0], sh[1])
		if err != nil {
			return nil, fmt.Errorf("SVD: block %v: %w", k, err)
		}
		facts = append(facts, &factored{key: k.Clone(), rows: sh[0], cols: sh[1], u: u, s: s, vt: vt})
	}

	// Stage 2: truncate the global spectrum.
	truncErr, err := truncate(facts, o)
	if err != nil {
		return nil, fmt.Errorf("SVD: %w", err)
	}

	// Stage 3: build the bond leg over the surviving blocks and assemble.
	rowLeg, _ := a.Leg(0)
	colLeg, _ := a.Leg(1)
	bond, err := bondLeg(a.Rule(), colLeg, facts)
	if err != nil {
		return nil, fmt.Errorf("SVD: %w", err)
	}
	bondConj := bond.Conjugate()

	storeU := block.NewStore()
	storeS := block.NewStore()
	storeV := block.NewStore()
	values := make([][]float64, 0, len(facts))
	sector := 0
	for _, f := range facts {
		if f.kept == 0 {
			continue
		}
		p := min(f.rows, f.cols)

		ub := make([]float64, f.rows*f.kept)
		for r := 0; r < f.rows; r++ {
			copy(ub[r*f.kept:(r+1)*f.kept], f.u[r*p:r*p+f.kept])
		}
		ublk, _ := block.FromData([]int{f.rows, f.kept}, ub)
		storeU.Set(block.Key{f.key[0], sector}, ublk)

		sb := make([]float64, f.kept*f.kept)
		vals := make([]float64, f.kept)
		for i := 0; i < f.kept; i++ {
			sb[i*f.kept+i] = f.s[i]
			vals[i] = f.s[i]
		}
		sblk, _ := block.FromData([]int{f.kept, f.kept}, sb)
		storeS.Set(block.Key{sector, sector}, sblk)
		values = append(values, vals)

		vblk, _ := block.FromData([]int{f.kept, f.cols}, f.vt[:f.kept*f.cols])
		storeV.Set(block.Key{sector, f.key[1]}, vblk)

		sector++
	}

	neutral := a.Rule().Identity()
	u, err := array.New(a.Total(), []*leg.LegCharge{rowLeg, bondConj}, storeU)
	if err != nil {
		return nil, err
	}
	s, err := array.New(neutral, []*leg.LegCharge{bond, bondConj}, storeS)
	if err != nil {
		return nil, err
	}
	vt, err := array.New(neutral, []*leg.LegCharge{bond, colLeg}, storeV)
	if err != nil {
		return nil, err
	}
	return &SVDResult{U: u, S: s, Vt: vt, Values: values, TruncErr: truncErr}, nil
}

// truncate fixes each factorization's kept count per the gathered options
// and returns the discarded squared weight. Within a block the singular
// values are descending, so every kept set is a prefix.
func truncate(facts []*factored, o truncOptions) (float64, error) {
	type candidate struct {
		blk, pos int
		val      float64
	}
	var cands []candidate
	for t, f := range facts {
		limit := len(f.s)
		if o.maxPerSector > 0 && o.maxPerSector < limit {
			limit = o.maxPerSector
		}
		for p := 0; p < limit; p++ {
			if f.s[p] < o.cutoff {
				break // descending: everything after is below the cutoff too
			}
			cands = append(cands, candidate{blk: t, pos: p, val: f.s[p]})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].val != cands[j].val {
			return cands[i].val > cands[j].val
		}
		if cands[i].blk != cands[j].blk {
			return cands[i].blk < cands[j].blk
		}
		return cands[i].pos < cands[j].pos
	})
	if o.maxStates > 0 && len(cands) > o.maxStates {
		cands = cands[:o.maxStates]
	}
	if len(cands) == 0 {
		return 0, ErrEmptyBond
	}

	for _, c := range cands {
		if c.pos+1 > facts[c.blk].kept {
			facts[c.blk].kept = c.pos + 1
		}
	}

	// discarded weight and optional renormalization
	discarded, keptWeight := 0.0, 0.0
	for _, f := range facts {
		for p, v := range f.s {
			if p < f.kept {
				keptWeight += v * v
			} else {
				discarded += v * v
			}
		}
	}
	if o.norm == NormUnit && keptWeight > 0 {
		scale := 1 / math.Sqrt(keptWeight)
		for _, f := range facts {
			for p := 0; p < f.kept; p++ {
				f.s[p] *= scale
			}
		}
	}
	return discarded, nil
}

// bondLeg builds the fresh bond leg: one sector per surviving factored
// block, in block key order, charged with the dual of the source block's
// effective column charge (so S and V† come out neutral).
func bondLeg(rule charge.Rule, colLeg *leg.LegCharge, facts []*factored) (*leg.LegCharge, error) {
	var sectors []leg.Sector
	begin := 0
	for _, f := range facts {
		if f.kept == 0 {
			continue
		}
		q := rule.Dual(colLeg.EffectiveCharge(f.key[1]))
		sectors = append(sectors, leg.Sector{Q: q, Begin: begin, End: begin + f.kept})
		begin += f.kept
	}
	if len(sectors) == 0 {
		return nil, ErrEmptyBond
	}
	return leg.New(rule, sectors, false)
}
