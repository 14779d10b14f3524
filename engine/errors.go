// SPDX-License-Identifier: MIT
// Package engine: sentinel error set.
// Leg incompatibilities surface as leg.ErrIncompatible and numeric failures
// as backend.ErrDecompositionFailed; the sentinels here cover what only the
// engine can detect.

package engine

import "errors"

var (
	// ErrBadAxes indicates a malformed contraction axis specification:
	// length mismatch between the two axis lists, repeated axes, or axes
	// outside the operand's rank.
	ErrBadAxes = errors.New("engine: invalid contraction axes")

	// ErrNotMatrix indicates a decomposition applied to an array that is
	// not rank-2. Combine legs into row/column groups first.
	ErrNotMatrix = errors.New("engine: decomposition requires a rank-2 array")

	// ErrEmptyBond indicates that truncation discarded every state, leaving
	// no bond sector to build a result from.
	ErrEmptyBond = errors.New("engine: truncation removed all states")

	// ErrNoFreeLegs indicates a contraction that would consume every leg of
	// both operands; use Inner for full contractions to a scalar.
	ErrNoFreeLegs = errors.New("engine: contraction leaves no free legs")

	// ErrNotBlockDiagonal indicates an Eigh input whose stored blocks are
	// not confined to diagonal sector keys.
	ErrNotBlockDiagonal = errors.New("engine: array is not block diagonal")
)
