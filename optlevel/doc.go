// Package optlevel holds the process-wide optimization level: how
// aggressively invariant checks are skipped for speed.
//
// Levels:
//
//   - level >= 2: maximum speed, bounds and consistency checks are skipped;
//     invariant-violating inputs produce undefined numeric garbage instead
//     of errors (documented trade-off, not a defect).
//   - level == 1 (the default): sanity-style invariant validation runs at
//     moderate cost and violations surface as errors immediately.
//   - level < 1: additionally enables fine-grained profiling hooks that
//     log per-operation timings through the configured logger.
//
// The level is global configuration, not per-array state. It may change at
// runtime between operations, never during one; it must never change the
// result of an operation, only whether violations are caught immediately.
package optlevel
