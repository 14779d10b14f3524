// SPDX-License-Identifier: MIT

// Package array: structural and elementwise operations. Every operation
// returns a fresh array with a fresh store.

package array

import (
	"fmt"
	"math"

	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/leg"
	"github.com/anton-romen/tensorq/optlevel"
)

// PermuteLegs reorders the legs so that leg i of the result is leg perm[i]
// of the receiver, remapping every block key and its dense axis order
// accordingly. O(1) metadata, O(stored elements · rank) data relabeling.
// Returns ErrOutOfRange on a malformed permutation.
func (a *Array) PermuteLegs(perm []int) (*Array, error) {
	defer optlevel.Profile("array.PermuteLegs")()

	n := len(a.legs)
	if len(perm) != n {
		return nil, fmt.Errorf("PermuteLegs%v: rank %d: %w", perm, n, ErrOutOfRange)
	}
	seen := make([]bool, n)
	newLegs := make([]*leg.LegCharge, n)
	for i, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return nil, fmt.Errorf("PermuteLegs%v: not a permutation: %w", perm, ErrOutOfRange)
		}
		seen[p] = true
		newLegs[i] = a.legs[p]
	}

	store := block.NewStore()
	for k := range a.store.Keys() {
		b, _ := a.store.Get(k)
		nk := make(block.Key, n)
		for i, p := range perm {
			nk[i] = k[p]
		}
		nb, err := b.PermuteAxes(perm)
		if err != nil {
			return nil, fmt.Errorf("PermuteLegs: block %v: %w", k, err)
		}
		store.Set(nk, nb)
	}
	return New(a.total, newLegs, store)
}

// Map applies fn to every stored element independently and returns the
// resulting array. Caller obligation: fn(0) must be 0, because the function is
// never evaluated on structural zeros, so a value-fabricating fn would
// silently break the dense equivalence. This is documented, not enforced.
func (a *Array) Map(fn func(float64) float64) *Array {
	store := block.NewStore()
	for k := range a.store.Keys() {
		b, _ := a.store.Get(k)
		nb := b.Clone()
		data := nb.Data()
		for i, v := range data {
			data[i] = fn(v)
		}
		store.Set(k, nb)
	}
	out, _ := New(a.total, a.legs, store) // same legs, same total: cannot fail
	return out
}

// Scale returns alpha·a.
func (a *Array) Scale(alpha float64) *Array {
	return a.Map(func(v float64) float64 { return alpha * v })
}

// Conj returns the conjugate array: every leg conjugated (orientation
// flipped), total charge dualized, block data unchanged (real dtype).
func (a *Array) Conj() *Array {
	legs := make([]*leg.LegCharge, len(a.legs))
	for i, l := range a.legs {
		legs[i] = l.Conjugate()
	}
	out, _ := New(a.rule.Dual(a.total), legs, a.store.Clone())
	return out
}

// Add returns a + other as the block-wise union sum. The operands must have
// Equal legs and equal total charge.
// Returns leg.ErrIncompatible otherwise.
func (a *Array) Add(other *Array) (*Array, error) {
	defer optlevel.Profile("array.Add")()

	if len(a.legs) != len(other.legs) {
		return nil, fmt.Errorf("Add: rank %d vs %d: %w", len(a.legs), len(other.legs), leg.ErrIncompatible)
	}
	for i, l := range a.legs {
		if !l.Equal(other.legs[i]) {
			return nil, fmt.Errorf("Add: leg %d differs: %w", i, leg.ErrIncompatible)
		}
	}
	if !a.rule.Equal(a.total, other.total) {
		return nil, fmt.Errorf("Add: total charge %v vs %v: %w", a.total, other.total, leg.ErrIncompatible)
	}

	store := a.store.Clone()
	for k := range other.store.Keys() {
		ob, _ := other.store.Get(k)
		if existing, ok := store.Get(k); ok {
			if err := existing.Add(ob); err != nil {
				return nil, fmt.Errorf("Add: block %v: %w", k, err)
			}
			continue
		}
		store.Set(k, ob.Clone())
	}
	return New(a.total, a.legs, store)
}

// Norm returns the Frobenius norm, computed over stored blocks only (the
// structural zeros contribute nothing by definition).
func (a *Array) Norm() float64 {
	acc := 0.0
	for k := range a.store.Keys() {
		b, _ := a.store.Get(k)
		for _, v := range b.Data() {
			acc += v * v
		}
	}
	return math.Sqrt(acc)
}
