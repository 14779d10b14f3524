// SPDX-License-Identifier: MIT

// Package charge: the built-in rule implementations.
// The set is closed: Trivial, U1, ZN and Product cover every symmetry this
// engine supports. No open-ended plugin dispatch.

package charge

import (
	"fmt"
	"strings"
)

// trivialRule carries no charge at all: every value is the empty vector.
type trivialRule struct{}

// Trivial returns the rule of "no symmetry": charge vectors are empty and
// every block is admissible.
func Trivial() Rule { return trivialRule{} }

func (trivialRule) Len() int             { return 0 }
func (trivialRule) Name() string         { return "Trivial" }
func (trivialRule) Fuse(_, _ Charge) Charge { return Charge{} }
func (trivialRule) Dual(_ Charge) Charge { return Charge{} }
func (trivialRule) Identity() Charge     { return Charge{} }
func (trivialRule) Equal(_, _ Charge) bool { return true }

// u1Rule is the additive integer charge: fusion is addition, dual is negation.
type u1Rule struct{}

// U1 returns the U(1)-like rule of a single conserved integer
// (particle number, magnetization, ...).
func U1() Rule { return u1Rule{} }

func (u1Rule) Len() int     { return 1 }
func (u1Rule) Name() string { return "U1" }

func (u1Rule) Fuse(a, b Charge) Charge { return Charge{a[0] + b[0]} }
func (u1Rule) Dual(a Charge) Charge    { return Charge{-a[0]} }
func (u1Rule) Identity() Charge        { return Charge{0} }
func (u1Rule) Equal(a, b Charge) bool  { return a[0] == b[0] }

// znRule is the finite cyclic group Z_n: fusion is addition mod n.
type znRule struct {
	n int64
}

// ZN returns the finite cyclic-group rule Z_n (parity for n=2, etc.).
// It returns ErrBadModulus for n < 2.
func ZN(n int) (Rule, error) {
	if n < 2 {
		return nil, fmt.Errorf("ZN(%d): %w", n, ErrBadModulus)
	}
	return znRule{n: int64(n)}, nil
}

func (r znRule) Len() int     { return 1 }
func (r znRule) Name() string { return fmt.Sprintf("Z%d", r.n) }

func (r znRule) Fuse(a, b Charge) Charge {
	return Charge{((a[0] + b[0]) % r.n + r.n) % r.n}
}

func (r znRule) Dual(a Charge) Charge {
	return Charge{(r.n - a[0]%r.n) % r.n}
}

func (r znRule) Identity() Charge       { return Charge{0} }
func (r znRule) Equal(a, b Charge) bool { return (a[0]-b[0])%r.n == 0 }

// productRule concatenates the charge vectors of its factors; fusion and
// duality apply factor-wise.
type productRule struct {
	factors []Rule
	total   int
	name    string
}

// Product returns the abelian product of several rules; its charge vectors
// are the concatenation of the factors' vectors in order.
func Product(rules ...Rule) Rule {
	total := 0
	names := make([]string, len(rules))
	for i, r := range rules {
		total += r.Len()
		names[i] = r.Name()
	}
	return productRule{
		factors: rules,
		total:   total,
		name:    "Product(" + strings.Join(names, "x") + ")",
	}
}

func (r productRule) Len() int     { return r.total }
func (r productRule) Name() string { return r.name }

func (r productRule) Fuse(a, b Charge) Charge {
	out := make(Charge, 0, r.total)
	off := 0
	for _, f := range r.factors {
		n := f.Len()
		out = append(out, f.Fuse(a[off:off+n], b[off:off+n])...)
		off += n
	}
	return out
}

func (r productRule) Dual(a Charge) Charge {
	out := make(Charge, 0, r.total)
	off := 0
	for _, f := range r.factors {
		n := f.Len()
		out = append(out, f.Dual(a[off:off+n])...)
		off += n
	}
	return out
}

func (r productRule) Identity() Charge {
	out := make(Charge, 0, r.total)
	for _, f := range r.factors {
		out = append(out, f.Identity()...)
	}
	return out
}

func (r productRule) Equal(a, b Charge) bool {
	off := 0
	for _, f := range r.factors {
		n := f.Len()
		if !f.Equal(a[off:off+n], b[off:off+n]) {
			return false
		}
		off += n
	}
	return true
}

// Validate checks that q is a well-formed value for rule r.
// Returns ErrBadChargeLen on length mismatch.
func Validate(r Rule, q Charge) error {
	if len(q) != r.Len() {
		return fmt.Errorf("charge len %d for rule %s (want %d): %w",
			len(q), r.Name(), r.Len(), ErrBadChargeLen)
	}
	return nil
}
