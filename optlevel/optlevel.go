// SPDX-License-Identifier: MIT

// Package optlevel: the controller itself.
// A single atomic integer plus a swappable zap logger for the profiling
// hooks. Readers tolerate the level changing between operations; nothing
// reads it more than once per operation.

package optlevel

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Default is the level a fresh process starts at: invariant checks on,
// profiling off.
const Default = 1

var (
	level  atomic.Int64
	logger atomic.Pointer[zap.Logger]
)

func init() {
	level.Store(Default)
	logger.Store(zap.NewNop())
}

// Set changes the process-wide level. Safe to call at runtime between
// operations.
func Set(l int) { level.Store(int64(l)) }

// Level returns the current level.
func Level() int { return int(level.Load()) }

// ChecksEnabled reports whether invariant validation should run
// (level <= 1).
func ChecksEnabled() bool { return Level() <= 1 }

// ProfilingEnabled reports whether fine-grained profiling hooks are active
// (level < 1).
func ProfilingEnabled() bool { return Level() < 1 }

// SetLogger installs the logger used by profiling hooks. A nil logger
// restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Profile starts a profiling span for the named operation and returns the
// function that closes it. When profiling is disabled both calls are no-ops;
// the level is read once, at span start.
//
// Usage:
//
//	defer optlevel.Profile("engine.Tensordot")()
func Profile(op string) func() {
	if !ProfilingEnabled() {
		return func() {}
	}
	start := time.Now()
	return func() {
		logger.Load().Debug("op done",
			zap.String("op", op),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
