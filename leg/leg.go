// SPDX-License-Identifier: MIT

// Package leg: the LegCharge type, its construction, validation, lookup and
// conjugation. Combination lives in combine.go.

package leg

import (
	"fmt"
	"sort"

	"github.com/anton-romen/tensorq/charge"
)

// Sector is one contiguous run of axis indices [Begin, End) sharing a single
// charge value.
type Sector struct {
	Q     charge.Charge // sector charge as stored (orientation not applied)
	Begin int           // first index, inclusive
	End   int           // last index, exclusive
}

// Size returns the number of indices in the sector.
// Complexity: O(1).
func (s Sector) Size() int { return s.End - s.Begin }

// LegCharge is the charge metadata of one tensor axis: an ordered,
// contiguous, gap-free partition of [0, Dim()) into charge sectors, plus a
// conjugation flag. A conjugated leg contributes the dual of its stored
// charges when charges are fused across legs.
//
// LegCharge values are immutable after construction; derived legs
// (Conjugate, CombineWith) are fresh values.
type LegCharge struct {
	rule    charge.Rule
	sectors []Sector
	conj    bool
}

// New builds a LegCharge from an explicit sector list.
// It returns ErrMalformed if the sectors do not partition [0, dim) exactly
// once in increasing order, if any sector is empty, or if any charge is
// invalid for the rule.
// Complexity: O(sectors · rule.Len()).
func New(rule charge.Rule, sectors []Sector, conjugated bool) (*LegCharge, error) {
	if len(sectors) == 0 {
		return nil, fmt.Errorf("New: empty sector list: %w", ErrMalformed)
	}
	next := 0 // expected Begin of the upcoming sector
	for i, s := range sectors {
		if s.Begin != next {
			return nil, fmt.Errorf("New: sector %d starts at %d, want %d: %w", i, s.Begin, next, ErrMalformed)
		}
		if s.End <= s.Begin {
			return nil, fmt.Errorf("New: sector %d is empty (%d..%d): %w", i, s.Begin, s.End, ErrMalformed)
		}
		if err := charge.Validate(rule, s.Q); err != nil {
			return nil, fmt.Errorf("New: sector %d: %v: %w", i, err, ErrMalformed)
		}
		next = s.End
	}
	own := make([]Sector, len(sectors))
	for i, s := range sectors {
		own[i] = Sector{Q: s.Q.Clone(), Begin: s.Begin, End: s.End}
	}
	return &LegCharge{rule: rule, sectors: own, conj: conjugated}, nil
}

// FromFlat builds a LegCharge from one charge per axis index, grouping
// consecutive equal charges into sectors. Sector order follows index order;
// charges need not be sorted.
// Complexity: O(dim · rule.Len()).
func FromFlat(rule charge.Rule, flat []charge.Charge, conjugated bool) (*LegCharge, error) {
	if len(flat) == 0 {
		return nil, fmt.Errorf("FromFlat: empty charge list: %w", ErrMalformed)
	}
	var sectors []Sector
	begin := 0
	for i := 1; i <= len(flat); i++ {
		if i == len(flat) || flat[i].Compare(flat[begin]) != 0 {
			sectors = append(sectors, Sector{Q: flat[begin], Begin: begin, End: i})
			begin = i
		}
	}
	return New(rule, sectors, conjugated)
}

// Trivial builds a single-sector leg of the given dimension carrying the
// rule's identity charge. Handy for symmetry-free axes.
func Trivial(rule charge.Rule, dim int, conjugated bool) (*LegCharge, error) {
	return New(rule, []Sector{{Q: rule.Identity(), Begin: 0, End: dim}}, conjugated)
}

// Rule returns the conservation rule this leg was built over.
func (l *LegCharge) Rule() charge.Rule { return l.rule }

// Dim returns the axis dimension covered by the partition.
// Complexity: O(1).
func (l *LegCharge) Dim() int { return l.sectors[len(l.sectors)-1].End }

// NumSectors returns the number of charge sectors.
func (l *LegCharge) NumSectors() int { return len(l.sectors) }

// Sector returns the i-th sector.
// Returns ErrOutOfRange for an invalid sector id.
func (l *LegCharge) Sector(i int) (Sector, error) {
	if i < 0 || i >= len(l.sectors) {
		return Sector{}, fmt.Errorf("Sector(%d): %w", i, ErrOutOfRange)
	}
	return l.sectors[i], nil
}

// IsConjugated reports whether the leg carries the dual orientation.
func (l *LegCharge) IsConjugated() bool { return l.conj }

// SectorOf locates the sector containing an axis index, returning the sector
// id and the offset of the index inside that sector.
// Returns ErrOutOfRange if idx is outside [0, Dim()).
// Complexity: O(log sectors) via binary search over the partition.
func (l *LegCharge) SectorOf(idx int) (sector, offset int, err error) {
	if idx < 0 || idx >= l.Dim() {
		return 0, 0, fmt.Errorf("SectorOf(%d): dim %d: %w", idx, l.Dim(), ErrOutOfRange)
	}
	// first sector whose End exceeds idx
	s := sort.Search(len(l.sectors), func(i int) bool { return l.sectors[i].End > idx })
	return s, idx - l.sectors[s].Begin, nil
}

// EffectiveCharge returns the charge sector i contributes to fusion: the
// stored charge for a normal leg, its dual for a conjugated leg.
// Complexity: O(rule.Len()).
func (l *LegCharge) EffectiveCharge(i int) charge.Charge {
	if l.conj {
		return l.rule.Dual(l.sectors[i].Q)
	}
	return l.sectors[i].Q.Clone()
}

// Blocked reports whether the stored charges are strictly ascending, i.e.
// every charge owns exactly one contiguous sector. Legs built by New or
// FromFlat with duplicate charges are valid but not blocked; fusion output
// (FusionMap.Combined) always is.
func (l *LegCharge) Blocked() bool {
	for i := 1; i < len(l.sectors); i++ {
		if l.sectors[i-1].Q.Compare(l.sectors[i].Q) >= 0 {
			return false
		}
	}
	return true
}

// Conjugate returns the leg of reversed orientation over the same partition.
// Stored charges are untouched; because fusion dualizes the charges of a
// conjugated leg, the effective charges of the result are the duals of the
// original's. Conjugating twice yields a leg Equal to the original.
// Complexity: O(sectors · rule.Len()).
func (l *LegCharge) Conjugate() *LegCharge {
	sectors := make([]Sector, len(l.sectors))
	for i, s := range l.sectors {
		sectors[i] = Sector{Q: s.Q.Clone(), Begin: s.Begin, End: s.End}
	}
	return &LegCharge{rule: l.rule, sectors: sectors, conj: !l.conj}
}

// Equal reports whether two legs are structurally identical: same rule, same
// orientation, same partition with the same stored charges.
func (l *LegCharge) Equal(other *LegCharge) bool {
	if !charge.Same(l.rule, other.rule) || l.conj != other.conj || len(l.sectors) != len(other.sectors) {
		return false
	}
	for i, s := range l.sectors {
		o := other.sectors[i]
		if s.Begin != o.Begin || s.End != o.End || !l.rule.Equal(s.Q, o.Q) {
			return false
		}
	}
	return true
}

// Compatible reports whether l and other may be contracted against each
// other: same rule, identical partitions, and sector-wise effective charges
// that are mutually dual (one normal, one conjugated orientation).
func (l *LegCharge) Compatible(other *LegCharge) bool {
	if !charge.Same(l.rule, other.rule) || len(l.sectors) != len(other.sectors) {
		return false
	}
	if l.conj == other.conj {
		return false
	}
	id := l.rule.Identity()
	for i, s := range l.sectors {
		o := other.sectors[i]
		if s.Begin != o.Begin || s.End != o.End {
			return false
		}
		if !l.rule.Equal(l.rule.Fuse(l.EffectiveCharge(i), other.EffectiveCharge(i)), id) {
			return false
		}
	}
	return true
}
