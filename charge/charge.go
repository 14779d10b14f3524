// SPDX-License-Identifier: MIT

// Package charge: the Charge value type and its ordering helpers.
// A Charge is a point in the value space of a conservation rule; the rule
// itself (rule.go) decides how charges combine.

package charge

// Charge is a fixed-length vector of integers in the value space of a Rule.
// The zero-length Charge is the value of the trivial rule. Charges are
// treated as immutable; operations return fresh slices.
type Charge []int64

// Clone returns an independent copy of q.
// Complexity: O(len(q)).
func (q Charge) Clone() Charge {
	if q == nil {
		return nil
	}
	out := make(Charge, len(q))
	copy(out, q)
	return out
}

// Compare orders two charges lexicographically: -1 if q < other, 0 if equal,
// +1 if q > other. Sector ordering and truncation tie-breaks rely on this
// being a total, deterministic order.
// Complexity: O(len(q)).
func (q Charge) Compare(other Charge) int {
	n := len(q)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		switch {
		case q[i] < other[i]:
			return -1
		case q[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(q) < len(other):
		return -1
	case len(q) > len(other):
		return 1
	}
	return 0
}

// EqualTo reports whether q and other are the same charge value.
func (q Charge) EqualTo(other Charge) bool {
	return q.Compare(other) == 0
}
