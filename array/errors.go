// SPDX-License-Identifier: MIT
// Package array: sentinel error set.
// Leg-level incompatibilities reuse leg.ErrIncompatible; rule mismatches
// wrap charge.ErrRuleMismatch. Sentinels here cover what only the array
// layer can detect.

package array

import "errors"

var (
	// ErrSanity indicates a post-hoc invariant violation: a stored block
	// whose key is not admissible, whose shape disagrees with its sectors,
	// or an array whose metadata is internally inconsistent.
	ErrSanity = errors.New("array: sanity check failed")

	// ErrBadDense indicates raw dense input whose length does not match the
	// product of the leg dimensions, or (with checks enabled) dense input
	// carrying nonzero entries outside every admissible block.
	ErrBadDense = errors.New("array: dense data inconsistent with legs")

	// ErrOutOfRange indicates a leg position outside [0, Rank()).
	ErrOutOfRange = errors.New("array: leg position out of range")
)
