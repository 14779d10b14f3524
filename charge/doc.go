// Package charge defines conservation-law rules and charge values.
//
// The charge package provides:
//
//   - Charge: a fixed-length integer vector living in the value space of a
//     conservation law.
//   - Rule: the closed capability set {Fuse, Dual, Identity, Equal} every
//     conservation law must implement.
//   - Built-in rules: Trivial (no symmetry), U1 (additive integer charge),
//     ZN (finite cyclic group), Product (abelian product of rules).
//
// Rules are interchangeable implementations of one contract: fusion is
// associative, the identity acts as a no-op, and for the abelian rules
// shipped here fusion is commutative. There is no plugin mechanism: the
// rule set is deliberately closed.
//
// See the examples in this package and in array for usage patterns.
package charge
