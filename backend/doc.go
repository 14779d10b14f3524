// Package backend isolates the dense linear-algebra routines the engine
// dispatches to, behind a deliberately narrow interface: matrix multiply,
// thin SVD, thin QR and symmetric eigendecomposition on flat row-major
// buffers. The block-iteration logic above never sees which implementation
// runs.
//
// Two implementations ship:
//
//   - "gonum" (default): gonum.org/v1/gonum mat/blas64, the BLAS/LAPACK
//     grade path.
//   - "reference": pure Go naive multiply, Householder QR, cyclic Jacobi
//     eigen and one-sided Jacobi SVD. Slow, dependency-free, useful for
//     cross-checking.
//
// Selection is environment-level: TENSORQ_BACKEND=reference switches the
// process to the reference backend; anything else (or unset) selects gonum.
// The variable is read once, at first use. Both backends agree up to
// floating-point rounding; the choice is transparent to array semantics.
package backend
