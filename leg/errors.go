// SPDX-License-Identifier: MIT
// Package leg: sentinel error set.
// All constructors and leg operations MUST return these sentinels and tests
// MUST check them via errors.Is.

package leg

import "errors"

var (
	// ErrMalformed indicates a partition with gaps, overlaps, a nonzero
	// start, or zero-length sectors, or sector charges invalid for the rule.
	ErrMalformed = errors.New("leg: malformed leg charge")

	// ErrIncompatible indicates that two legs cannot take part in the
	// requested operation: mismatched partitions, mismatched rules, or
	// orientations/charges that are not mutually dual where contraction
	// requires them to be.
	ErrIncompatible = errors.New("leg: incompatible legs")

	// ErrOutOfRange indicates an index outside [0, Dim()) or a sector id
	// outside [0, NumSectors()).
	ErrOutOfRange = errors.New("leg: index out of range")
)
