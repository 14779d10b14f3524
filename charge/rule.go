// SPDX-License-Identifier: MIT

// Package charge: the Rule contract.
// A Rule is the closed capability set every conservation law implements.
// Implementations live in rules.go; callers treat rules as interchangeable.

package charge

// Rule defines a conservation law: how charge values combine under tensor
// products (Fuse), how a value inverts under leg conjugation (Dual), the
// identity element, and value equality.
//
// Contract (enforced by the shipped implementations, relied on everywhere):
//   - Fuse is associative; for abelian rules it is also commutative.
//   - Fuse(q, Identity()) == q for every valid q.
//   - Fuse(q, Dual(q)) == Identity() for every valid q.
//   - Dual(Dual(q)) == q.
type Rule interface {
	// Len returns the length of this rule's charge vectors.
	// Complexity: O(1).
	Len() int

	// Name returns a stable identifier for the rule, e.g. "U1" or "Z4".
	// Two rules interoperate iff their names are equal; this is how
	// ErrRuleMismatch situations are detected.
	Name() string

	// Fuse combines two charges under the group operation.
	// Complexity: O(Len).
	Fuse(a, b Charge) Charge

	// Dual returns the conjugate (inverse) of a charge, applied when a leg
	// carries the dual orientation.
	// Complexity: O(Len).
	Dual(a Charge) Charge

	// Identity returns the rule's neutral element.
	// Complexity: O(Len).
	Identity() Charge

	// Equal reports whether two charges are the same value under this rule.
	// Complexity: O(Len).
	Equal(a, b Charge) bool
}

// Same reports whether two rules are interoperable. Arrays and legs built
// over different rules must never be combined; callers check Same before
// fusing charges across operands.
func Same(a, b Rule) bool {
	return a.Name() == b.Name() && a.Len() == b.Len()
}

// Fold fuses an arbitrary number of charges left to right under r,
// starting from the identity. Used when recomputing the total charge
// carried by a block across all of its legs.
// Complexity: O(len(qs) · r.Len()).
func Fold(r Rule, qs ...Charge) Charge {
	acc := r.Identity()
	for _, q := range qs {
		acc = r.Fuse(acc, q)
	}
	return acc
}
