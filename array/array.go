// SPDX-License-Identifier: MIT

// Package array: the Array type, its construction, accessors and the sanity
// check. Dense conversion lives in dense.go, structural operations in
// ops.go and reshape.go.

package array

import (
	"fmt"

	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/charge"
	"github.com/anton-romen/tensorq/leg"
	"github.com/anton-romen/tensorq/optlevel"
)

// Dtype tracks the numeric element kind of an array. The engine currently
// materializes float64 only; the tag exists so mixed-precision callers can
// carry intent through metadata.
type Dtype int

const (
	// Float64 is the only dtype with materialized storage.
	Float64 Dtype = iota
)

// String implements fmt.Stringer.
func (d Dtype) String() string {
	if d == Float64 {
		return "float64"
	}
	return fmt.Sprintf("Dtype(%d)", int(d))
}

// Array is a charge-conserving block-sparse tensor. Zero value is not ready;
// use the constructors. The array owns its store exclusively.
type Array struct {
	rule  charge.Rule
	legs  []*leg.LegCharge
	total charge.Charge
	dtype Dtype
	store *block.Store
}

// New assembles an array from legs, a total charge and a block store,
// taking ownership of the store. All legs must share one conservation rule.
// With checks enabled (optlevel), the assembled array is validated before
// being returned.
func New(total charge.Charge, legs []*leg.LegCharge, store *block.Store) (*Array, error) {
	if len(legs) == 0 {
		return nil, fmt.Errorf("New: no legs: %w", leg.ErrMalformed)
	}
	rule := legs[0].Rule()
	for i, l := range legs {
		if !charge.Same(rule, l.Rule()) {
			return nil, fmt.Errorf("New: leg %d rule %s vs %s: %v: %w",
				i, l.Rule().Name(), rule.Name(), charge.ErrRuleMismatch, leg.ErrIncompatible)
		}
	}
	if err := charge.Validate(rule, total); err != nil {
		return nil, fmt.Errorf("New: total charge: %v: %w", err, ErrSanity)
	}
	if store == nil {
		store = block.NewStore()
	}
	own := make([]*leg.LegCharge, len(legs))
	copy(own, legs)
	a := &Array{rule: rule, legs: own, total: total.Clone(), dtype: Float64, store: store}
	if optlevel.ChecksEnabled() {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Zeros returns the all-zero array over the given legs: admissible
// everywhere, no block materialized.
func Zeros(total charge.Charge, legs ...*leg.LegCharge) (*Array, error) {
	return New(total, legs, block.NewStore())
}

// Rank returns the number of legs (== tensor rank).
func (a *Array) Rank() int { return len(a.legs) }

// Rule returns the conservation rule all legs share.
func (a *Array) Rule() charge.Rule { return a.rule }

// Total returns a copy of the array's total charge.
func (a *Array) Total() charge.Charge { return a.total.Clone() }

// Dtype returns the tracked element kind.
func (a *Array) Dtype() Dtype { return a.dtype }

// Leg returns the i-th leg.
// Returns ErrOutOfRange for an invalid position.
func (a *Array) Leg(i int) (*leg.LegCharge, error) {
	if i < 0 || i >= len(a.legs) {
		return nil, fmt.Errorf("Leg(%d): rank %d: %w", i, len(a.legs), ErrOutOfRange)
	}
	return a.legs[i], nil
}

// Legs returns a copy of the leg list.
func (a *Array) Legs() []*leg.LegCharge {
	out := make([]*leg.LegCharge, len(a.legs))
	copy(out, a.legs)
	return out
}

// Shape returns the dense shape (one dimension per leg).
func (a *Array) Shape() []int {
	out := make([]int, len(a.legs))
	for i, l := range a.legs {
		out[i] = l.Dim()
	}
	return out
}

// Store exposes the array's block store. The store is exclusively owned;
// callers mutating it directly must re-establish invariants (Validate)
// before handing the array to anyone else.
func (a *Array) Store() *block.Store { return a.store }

// NumBlocks returns the number of materialized blocks.
func (a *Array) NumBlocks() int { return a.store.Len() }

// StoredElements returns the total number of materialized scalar entries.
func (a *Array) StoredElements() int {
	n := 0
	for k := range a.store.Keys() {
		if b, ok := a.store.Get(k); ok {
			n += b.Size()
		}
	}
	return n
}

// Sparsity returns the stored fraction of the dense element count, in
// [0, 1]. A plain dense tensor would report 1.
func (a *Array) Sparsity() float64 {
	dense := 1
	for _, l := range a.legs {
		dense *= l.Dim()
	}
	if dense == 0 {
		return 0
	}
	return float64(a.StoredElements()) / float64(dense)
}

// Admissible reports whether a block at key fuses to the array's total
// charge. Keys of wrong length or with out-of-range sector ids are not
// admissible.
// Complexity: O(rank · rule.Len()).
func (a *Array) Admissible(key block.Key) bool {
	if len(key) != len(a.legs) {
		return false
	}
	acc := a.rule.Identity()
	for i, s := range key {
		if s < 0 || s >= a.legs[i].NumSectors() {
			return false
		}
		acc = a.rule.Fuse(acc, a.legs[i].EffectiveCharge(s))
	}
	return a.rule.Equal(acc, a.total)
}

// blockShape returns the dense shape of a block at key: the cross-product
// of the sector sizes. key must be in range.
func (a *Array) blockShape(key block.Key) []int {
	shape := make([]int, len(key))
	for i, s := range key {
		sec, _ := a.legs[i].Sector(s)
		shape[i] = sec.Size()
	}
	return shape
}

// Validate re-derives every array invariant: leg/rank agreement, key
// ranges, block shapes against sector sizes, and charge admissibility of
// every stored block. It raises ErrSanity on the first violation,
// regardless of the optimization level (callers gate on the level; the
// check itself always tells the truth).
func (a *Array) Validate() error {
	for k := range a.store.Keys() {
		if len(k) != len(a.legs) {
			return fmt.Errorf("Validate: key %v has rank %d, array rank %d: %w", k, len(k), len(a.legs), ErrSanity)
		}
		for i, s := range k {
			if s < 0 || s >= a.legs[i].NumSectors() {
				return fmt.Errorf("Validate: key %v sector %d out of range on leg %d: %w", k, s, i, ErrSanity)
			}
		}
		if !a.Admissible(k) {
			return fmt.Errorf("Validate: block %v violates charge conservation (total %v): %w", k, a.total, ErrSanity)
		}
		b, _ := a.store.Get(k)
		want := a.blockShape(k)
		got := b.Shape()
		for i := range want {
			if got[i] != want[i] {
				return fmt.Errorf("Validate: block %v shape %v, sectors demand %v: %w", k, got, want, ErrSanity)
			}
		}
	}
	return nil
}

// validateChecked runs Validate only while the process optimization level
// keeps checks enabled.
func (a *Array) validateChecked() error {
	if !optlevel.ChecksEnabled() {
		return nil
	}
	return a.Validate()
}
