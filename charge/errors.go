// SPDX-License-Identifier: MIT
// Package charge: sentinel error set.
// All constructors and rule operations MUST return these sentinels and tests
// MUST check them via errors.Is. Panics are reserved for programmer errors
// in private helpers.

package charge

import "errors"

var (
	// ErrRuleMismatch indicates that two operands carry charges from
	// different conservation rules (e.g. fusing a U(1) charge with a Z_4
	// charge, or contracting arrays built over different rules).
	ErrRuleMismatch = errors.New("charge: conservation rule mismatch")

	// ErrBadChargeLen indicates a Charge whose vector length does not match
	// the rule's expected length.
	ErrBadChargeLen = errors.New("charge: charge vector length mismatch")

	// ErrBadModulus indicates a ZN rule constructed with n < 2.
	ErrBadModulus = errors.New("charge: cyclic modulus must be >= 2")
)
