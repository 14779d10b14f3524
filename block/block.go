// SPDX-License-Identifier: MIT

// Package block: the dense Block kernel.
// Flat buffer + shape + row-major strides, the layout used throughout the
// Go tensor ecosystem. Only the operations the engine needs are provided.

package block

import (
	"fmt"
	"math"
)

// Block is a dense sub-array: a flat row-major []float64 buffer plus its
// shape. A Block belongs to exactly one Store at a time; cloning is explicit.
type Block struct {
	shape   []int
	strides []int
	data    []float64
}

// strides precomputes row-major strides for a shape.
func stridesFor(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

func sizeOf(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// New allocates a zero-filled block of the given shape.
// Returns ErrBadShape if any dimension is non-positive.
func New(shape ...int) (*Block, error) {
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("New%v: %w", shape, ErrBadShape)
		}
	}
	own := make([]int, len(shape))
	copy(own, shape)
	return &Block{shape: own, strides: stridesFor(own), data: make([]float64, sizeOf(own))}, nil
}

// FromData wraps an existing row-major buffer. The buffer is taken over, not
// copied; the caller must not retain it.
// Returns ErrBadShape if the length does not match the shape.
func FromData(shape []int, data []float64) (*Block, error) {
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("FromData%v: %w", shape, ErrBadShape)
		}
	}
	if len(data) != sizeOf(shape) {
		return nil, fmt.Errorf("FromData%v: data len %d, want %d: %w", shape, len(data), sizeOf(shape), ErrBadShape)
	}
	own := make([]int, len(shape))
	copy(own, shape)
	return &Block{shape: own, strides: stridesFor(own), data: data}, nil
}

// Rank returns the number of axes.
func (b *Block) Rank() int { return len(b.shape) }

// Shape returns a copy of the block's shape.
func (b *Block) Shape() []int {
	out := make([]int, len(b.shape))
	copy(out, b.shape)
	return out
}

// Dim returns the size of axis i (unchecked; programmer error panics).
func (b *Block) Dim(i int) int { return b.shape[i] }

// Size returns the total number of elements.
func (b *Block) Size() int { return len(b.data) }

// Data exposes the underlying row-major buffer. Callers mutating it must
// re-establish array invariants before the owning array is used again.
func (b *Block) Data() []float64 { return b.data }

// flatIndex converts a multi-index into a flat offset.
func (b *Block) flatIndex(idx []int) (int, error) {
	if len(idx) != len(b.shape) {
		return 0, fmt.Errorf("index rank %d vs block rank %d: %w", len(idx), len(b.shape), ErrOutOfRange)
	}
	flat := 0
	for i, x := range idx {
		if x < 0 || x >= b.shape[i] {
			return 0, fmt.Errorf("index %v outside shape %v: %w", idx, b.shape, ErrOutOfRange)
		}
		flat += x * b.strides[i]
	}
	return flat, nil
}

// At retrieves the element at a multi-index.
// Returns ErrOutOfRange on invalid indices. Complexity: O(rank).
func (b *Block) At(idx ...int) (float64, error) {
	flat, err := b.flatIndex(idx)
	if err != nil {
		return 0, fmt.Errorf("At: %w", err)
	}
	return b.data[flat], nil
}

// Set assigns the element at a multi-index.
// Returns ErrOutOfRange on invalid indices. Complexity: O(rank).
func (b *Block) Set(v float64, idx ...int) error {
	flat, err := b.flatIndex(idx)
	if err != nil {
		return fmt.Errorf("Set: %w", err)
	}
	b.data[flat] = v
	return nil
}

// Clone returns a deep, independent copy.
// Complexity: O(Size).
func (b *Block) Clone() *Block {
	data := make([]float64, len(b.data))
	copy(data, b.data)
	out, _ := FromData(b.shape, data)
	return out
}

// Reshape returns a block over the same data (copied) with a new shape of
// identical total size. Row-major order is preserved, so this is the
// contiguous reshape used by leg combine/split.
// Returns ErrShapeMismatch if total sizes differ.
func (b *Block) Reshape(shape ...int) (*Block, error) {
	if sizeOf(shape) != len(b.data) {
		return nil, fmt.Errorf("Reshape %v -> %v: %w", b.shape, shape, ErrShapeMismatch)
	}
	data := make([]float64, len(b.data))
	copy(data, b.data)
	return FromData(shape, data)
}

// PermuteAxes returns a new block whose axis i holds the data of the
// original's axis perm[i], the dense counterpart of a leg permutation.
// perm must be a permutation of [0, rank).
// Returns ErrOutOfRange on a malformed permutation.
// Complexity: O(Size · rank).
func (b *Block) PermuteAxes(perm []int) (*Block, error) {
	n := len(b.shape)
	if len(perm) != n {
		return nil, fmt.Errorf("PermuteAxes%v: rank %d: %w", perm, n, ErrOutOfRange)
	}
	seen := make([]bool, n)
	newShape := make([]int, n)
	for i, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return nil, fmt.Errorf("PermuteAxes%v: not a permutation: %w", perm, ErrOutOfRange)
		}
		seen[p] = true
		newShape[i] = b.shape[p]
	}
	out, err := New(newShape...)
	if err != nil {
		return nil, err
	}
	// walk the output in row-major order, gathering from the source
	idx := make([]int, n)
	src := make([]int, n)
	for flat := 0; flat < len(out.data); flat++ {
		for i := 0; i < n; i++ {
			src[perm[i]] = idx[i]
		}
		s := 0
		for i := 0; i < n; i++ {
			s += src[i] * b.strides[i]
		}
		out.data[flat] = b.data[s]
		// increment odometer
		for i := n - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < newShape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out, nil
}

// Scale multiplies every element by alpha, in place.
// Complexity: O(Size).
func (b *Block) Scale(alpha float64) {
	for i := range b.data {
		b.data[i] *= alpha
	}
}

// Add accumulates other into b element-wise, in place.
// Returns ErrShapeMismatch if shapes differ.
// Complexity: O(Size).
func (b *Block) Add(other *Block) error {
	if len(b.shape) != len(other.shape) {
		return fmt.Errorf("Add: rank %d vs %d: %w", len(b.shape), len(other.shape), ErrShapeMismatch)
	}
	for i := range b.shape {
		if b.shape[i] != other.shape[i] {
			return fmt.Errorf("Add: shape %v vs %v: %w", b.shape, other.shape, ErrShapeMismatch)
		}
	}
	for i, v := range other.data {
		b.data[i] += v
	}
	return nil
}

// MaxAbs returns the largest absolute element value (0 for the empty block).
// Complexity: O(Size).
func (b *Block) MaxAbs() float64 {
	m := 0.0
	for _, v := range b.data {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
