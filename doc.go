// Package tensorq is a symmetry-aware block-sparse tensor engine for
// tensor-network simulations — charges, legs, conserved arrays and the
// contraction/decomposition machinery that exploits charge sparsity.
//
// 🚀 What is tensorq?
//
//	A library for dense numeric arrays whose entries are constrained by
//	conservation laws (abelian "charges" on each axis), bringing together:
//		• Charge rules: trivial, U(1), Z_n, and products thereof
//		• Legs: axis partitions into charge sectors with orientation
//		• Block stores: only admissible dense sub-blocks are materialized
//		• Arrays: permute, combine/split legs, map, densify
//		• Engine: tensordot contraction, SVD/QR/Eigh with truncation
//		• Backends: gonum (BLAS/LAPACK-grade) or a pure-Go reference
//
// ✨ Why choose tensorq?
//
//   - Structural sparsity – compute scales with matching charge sectors,
//     not with the dense product of dimensions
//   - Deterministic – fixed sector ordering, documented tie-breaks,
//     reproducible truncation
//   - Tunable safety – a process-wide optimization level trades invariant
//     checking for raw speed without ever changing results
//
// Under the hood, everything is organized under seven subpackages:
//
//	charge/   — conservation-law rules (fuse, dual, identity)
//	leg/      — per-axis charge sectors, combine/split fusion maps
//	block/    — block store + flat dense sub-block kernel
//	array/    — the charge-conserving array type
//	engine/   — contraction and decomposition
//	backend/  — swappable dense linear-algebra dispatch
//	optlevel/ — process-wide check/profiling level
//
// Quick ASCII example — a U(1) matrix with two diagonal blocks:
//
//	charge 0 ┌────┬────┐
//	         │ ██ │    │
//	charge 1 ├────┼────┤
//	         │    │ ██ │
//	         └────┴────┘
//
//	only the shaded blocks exist in memory; the rest is structurally zero.
//
//	go get github.com/anton-romen/tensorq
package tensorq
