// SPDX-License-Identifier: MIT

// Package array: conversion between the block-sparse form and classical
// dense tensors.

package array

import (
	"fmt"

	"github.com/anton-romen/tensorq/block"
	"github.com/anton-romen/tensorq/charge"
	"github.com/anton-romen/tensorq/leg"
	"github.com/anton-romen/tensorq/optlevel"
)

// BlockSpec pairs a key with its dense block for FromBlocks.
type BlockSpec struct {
	Key   block.Key
	Block *block.Block
}

// FromBlocks builds an array from explicitly provided blocks, taking
// ownership of the block buffers. Admissibility and shapes are validated
// while checks are enabled.
func FromBlocks(total charge.Charge, legs []*leg.LegCharge, specs []BlockSpec) (*Array, error) {
	store := block.NewStore()
	for _, sp := range specs {
		store.Set(sp.Key, sp.Block)
	}
	return New(total, legs, store)
}

// FromDense builds an array from a flat row-major dense tensor whose shape
// is the product of the leg dimensions. Admissible, not-all-zero blocks are
// extracted; everything else is dropped as structurally absent. While
// checks are enabled, nonzero entries outside every admissible block are
// rejected with ErrBadDense, since such data cannot conserve the declared
// charge.
// Complexity: O(dense size).
func FromDense(total charge.Charge, legs []*leg.LegCharge, data []float64) (*Array, error) {
	a, err := Zeros(total, legs...)
	if err != nil {
		return nil, err
	}
	size := 1
	for _, l := range legs {
		size *= l.Dim()
	}
	if len(data) != size {
		return nil, fmt.Errorf("FromDense: data len %d, legs demand %d: %w", len(data), size, ErrBadDense)
	}

	denseStrides := strides(a.Shape())
	checking := optlevel.ChecksEnabled()

	// walk every sector combination with an odometer over sector counts
	key := make(block.Key, len(legs))
	for {
		blk, maxAbs := a.gatherBlock(key, data, denseStrides)
		switch {
		case a.Admissible(key):
			if maxAbs > 0 {
				a.store.Set(key, blk)
			}
		case checking && maxAbs > 0:
			return nil, fmt.Errorf("FromDense: nonzero entries in non-admissible block %v: %w", key, ErrBadDense)
		}
		if !nextKey(key, sectorCounts(legs)) {
			break
		}
	}
	return a, nil
}

// nextKey advances key as a row-major odometer over per-leg sector counts;
// it reports false once every combination has been visited.
func nextKey(key block.Key, counts []int) bool {
	for i := len(key) - 1; i >= 0; i-- {
		key[i]++
		if key[i] < counts[i] {
			return true
		}
		key[i] = 0
	}
	return false
}

// gatherBlock copies the dense region addressed by key into a fresh block,
// returning it together with the largest absolute value seen.
func (a *Array) gatherBlock(key block.Key, data []float64, denseStrides []int) (*block.Block, float64) {
	shape := a.blockShape(key)
	begin := make([]int, len(key))
	for i, s := range key {
		sec, _ := a.legs[i].Sector(s)
		begin[i] = sec.Begin
	}
	buf := make([]float64, sizeOf(shape))
	maxAbs := 0.0

	idx := make([]int, len(shape))
	for flat := 0; flat < len(buf); flat++ {
		src := 0
		for i := range idx {
			src += (begin[i] + idx[i]) * denseStrides[i]
		}
		v := data[src]
		buf[flat] = v
		if av := abs(v); av > maxAbs {
			maxAbs = av
		}
		incr(idx, shape)
	}
	blk, _ := block.FromData(shape, buf)
	return blk, maxAbs
}

// ToDense materializes the array as one dense tensor with explicit zeros
// outside the stored blocks.
// Complexity: O(dense size).
func (a *Array) ToDense() *block.Block {
	shape := a.Shape()
	out := make([]float64, sizeOf(shape))
	denseStrides := strides(shape)

	for k := range a.store.Keys() {
		b, _ := a.store.Get(k)
		begin := make([]int, len(k))
		for i, s := range k {
			sec, _ := a.legs[i].Sector(s)
			begin[i] = sec.Begin
		}
		bshape := b.Shape()
		data := b.Data()
		idx := make([]int, len(bshape))
		for flat := 0; flat < len(data); flat++ {
			dst := 0
			for i := range idx {
				dst += (begin[i] + idx[i]) * denseStrides[i]
			}
			out[dst] = data[flat]
			incr(idx, bshape)
		}
	}
	blk, _ := block.FromData(shape, out)
	return blk
}

// --- small shape helpers shared across the package ---

func sizeOf(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

// incr advances a row-major odometer; wraps silently at the end.
func incr(idx, shape []int) {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}

func sectorCounts(legs []*leg.LegCharge) []int {
	out := make([]int, len(legs))
	for i, l := range legs {
		out[i] = l.NumSectors()
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
