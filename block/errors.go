// SPDX-License-Identifier: MIT
// Package block: sentinel error set.

package block

import "errors"

var (
	// ErrBadShape is returned when a requested shape has a non-positive
	// dimension or does not match the provided data length.
	ErrBadShape = errors.New("block: invalid shape")

	// ErrOutOfRange indicates a multi-index outside the block's shape or a
	// permutation/axis argument outside the block's rank.
	ErrOutOfRange = errors.New("block: index out of range")

	// ErrShapeMismatch indicates incompatible shapes between two blocks
	// (e.g. Add over different shapes).
	ErrShapeMismatch = errors.New("block: shape mismatch")
)
