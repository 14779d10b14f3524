// SPDX-License-Identifier: MIT

// Package engine: functional configuration for decomposition truncation.
// Mirrors the package-wide conventions: documented defaults, WithX
// constructors validating their input, unexported option state.

package engine

// NormMode selects what happens to the kept singular spectrum after
// truncation.
type NormMode int

const (
	// NormNone keeps truncated singular values exactly as factorized.
	NormNone NormMode = iota

	// NormUnit rescales the kept values so their squared sum is 1,
	// the wavefunction renormalization used by MPS sweeps.
	NormUnit
)

// Defaults: zero-option behavior keeps the full spectrum.
const (
	// DefaultMaxStates keeps every state (no global cap).
	DefaultMaxStates = 0

	// DefaultMaxPerSector keeps every state per sector (no per-sector cap).
	DefaultMaxPerSector = 0

	// DefaultCutoff discards nothing on magnitude.
	DefaultCutoff = 0.0
)

// truncOptions is the gathered option state.
type truncOptions struct {
	maxStates    int      // > 0 ⇒ keep at most this many states globally
	maxPerSector int      // > 0 ⇒ keep at most this many states per sector
	cutoff       float64  // discard singular values strictly below this
	norm         NormMode // spectrum normalization after truncation
}

// TruncOption configures SVD truncation.
type TruncOption func(*truncOptions)

// WithMaxStates caps the total number of kept singular values across all
// sectors ("keep top-k globally"). k <= 0 means unlimited.
func WithMaxStates(k int) TruncOption {
	return func(o *truncOptions) { o.maxStates = k }
}

// WithMaxPerSector caps the number of kept singular values per bond sector.
// k <= 0 means unlimited.
func WithMaxPerSector(k int) TruncOption {
	return func(o *truncOptions) { o.maxPerSector = k }
}

// WithCutoff discards singular values strictly below eps. Panics on
// negative or NaN eps (programmer error).
func WithCutoff(eps float64) TruncOption {
	if !(eps >= 0) {
		panic("engine: WithCutoff requires eps >= 0")
	}
	return func(o *truncOptions) { o.cutoff = eps }
}

// WithNormalize selects the post-truncation spectrum normalization.
func WithNormalize(mode NormMode) TruncOption {
	return func(o *truncOptions) { o.norm = mode }
}

// gatherTruncOptions applies opts over the documented defaults.
func gatherTruncOptions(opts []TruncOption) truncOptions {
	o := truncOptions{
		maxStates:    DefaultMaxStates,
		maxPerSector: DefaultMaxPerSector,
		cutoff:       DefaultCutoff,
		norm:         NormNone,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
