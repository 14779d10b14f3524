// Package block provides the dense sub-blocks of a charge-conserving array
// and the per-array store that holds them.
//
// The block package provides:
//
//   - Block: a flat []float64 buffer with a shape and row-major strides;
//     the only dense kernel the engine needs (multi-index access, axis
//     permutation, contiguous reshape, scaling, accumulation).
//   - Key: one sector index per leg, identifying where a block sits in the
//     charge structure of its array.
//   - Store: the associative mapping from keys to blocks. Each array owns
//     its store exclusively; stores are never shared between arrays.
//
// Iteration over a store is lazy, restartable and stable: keys come back in
// ascending lexicographic order regardless of insertion order.
//
// Blocks are structural: a block exists in a store only because its key is
// admissible, never as zero-padding over dense storage.
package block
