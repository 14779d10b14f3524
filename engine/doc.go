// Package engine implements contraction and decomposition of
// charge-conserving arrays.
//
// The engine package provides:
//
//   - Tensordot: pairwise axis summation generalizing matrix
//     multiplication. Stored blocks are grouped by the sector indices of
//     the contracted legs; only sector combinations present in both
//     operands are multiplied, so cost scales with matching sector pairs,
//     not with the dense product of dimensions.
//   - SVD, QR, Eigh: block-by-block factorizations of rank-2 arrays
//     (combine legs first to get there), reassembled into new arrays whose
//     fresh "bond" leg carries one sector per factored block.
//   - Truncation options for SVD: global top-k states, per-sector caps, a
//     numeric cutoff, and spectrum normalization, all deterministic, with
//     value ties broken by ascending (bond sector, position in sector).
//
// Failure semantics: leg incompatibilities and rule mismatches are explicit
// errors at the offending call (leg.ErrIncompatible), never a silent zero
// result; numeric non-convergence surfaces as
// backend.ErrDecompositionFailed, a distinct kind. Nothing is retried.
//
// All dense work dispatches through backend.Selected(); the engine never
// touches BLAS directly.
package engine
