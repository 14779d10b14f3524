// Package array implements the charge-conserving block-sparse tensor: an
// ordered list of legs, a total charge, and the store of admissible dense
// blocks.
//
// The array package provides:
//
//   - Construction from raw dense data (admissibility inferred, structural
//     zeros dropped), from explicit blocks, or empty (Zeros).
//   - Axis permutation, leg combine/split (bit-identical round-trip via the
//     leg.FusionMap), elementwise maps, scaling, addition, conjugation.
//   - ToDense materialization with explicit zeros for collaborators that
//     need classical dense output.
//   - Validate: the sanity check re-deriving every invariant; it runs
//     automatically inside mutating entry points while the process
//     optimization level keeps checks enabled.
//
// An Array is admissible by construction: a block exists only where the
// effective charges of its legs fuse to the array's total charge. The array
// is equivalent in meaning to the dense tensor that is zero outside
// admissible blocks.
//
// Arrays behave as values: every operation returns a fresh array owning a
// fresh block store. Nothing is shared, so each result is independently
// destructible and in-place mutation of one array can never leak into
// another. Concurrent mutation of a single array is the caller's problem to
// serialize.
package array
