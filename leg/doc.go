// Package leg models one tensor axis as an ordered partition into charge
// sectors, plus an orientation flag.
//
// The leg package provides:
//
//   - Sector: a contiguous index range [Begin, End) tagged with one charge.
//   - LegCharge: the full partition of an axis's index range into sectors,
//     carrying the conservation rule and a conjugation flag. A conjugated
//     leg contributes the dual of its stored charges when fused.
//   - CombineWith / FusionMap: merging two legs into one, with the exact
//     bookkeeping needed to reconstruct blocks after the merge and to
//     invert it bit-for-bit.
//
// Partitions are strict: sectors start at 0, are gap-free, overlap-free and
// never empty; construction rejects anything else with ErrMalformed.
//
// Combined legs order their sectors by ascending fused charge; inside one
// combined sector, contributing (left, right) source-sector pairs are laid
// out in ascending (left, right) order. The FusionMap records every pair's
// offset, so splitting recovers the original layout exactly. Note that a
// combined leg therefore relabels indices relative to a plain row-major
// reshape; the FusionMap is the only sanctioned way to invert a combine.
package leg
