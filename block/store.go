// SPDX-License-Identifier: MIT

// Package block: the per-array Store.
// An associative mapping from sector-index keys to dense blocks with a
// stable, restartable iteration order. Exclusively owned by one array.

package block

import (
	"iter"
	"sort"
	"strconv"
	"strings"
)

// Key identifies a block by one sector index per leg.
type Key []int

// Clone returns an independent copy of k.
func (k Key) Clone() Key {
	out := make(Key, len(k))
	copy(out, k)
	return out
}

// Compare orders keys lexicographically; all keys in one store share a
// length (the array rank), so the order is total and stable.
func (k Key) Compare(other Key) int {
	n := len(k)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		switch {
		case k[i] < other[i]:
			return -1
		case k[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	}
	return 0
}

// String renders the key for diagnostics, e.g. "(1,0,2)".
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// encode produces the internal map key.
func (k Key) encode() string {
	var sb strings.Builder
	for i, v := range k {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

type entry struct {
	key Key
	blk *Block
}

// Store maps Keys to Blocks. The zero value is not ready; use NewStore.
// A Store belongs to exactly one array; operations producing new arrays
// always produce fresh stores.
type Store struct {
	entries map[string]entry
	sorted  []Key // cached sorted keys; nil when invalidated
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Len returns the number of stored blocks.
func (s *Store) Len() int { return len(s.entries) }

// Get returns the block stored under key, or (nil, false) when absent.
// Complexity: O(len(key)).
func (s *Store) Get(key Key) (*Block, bool) {
	e, ok := s.entries[key.encode()]
	if !ok {
		return nil, false
	}
	return e.blk, true
}

// Set stores blk under key, replacing any existing block at that key.
// The key is copied; the block is taken over.
// Complexity: O(len(key)) amortized.
func (s *Store) Set(key Key, blk *Block) {
	s.entries[key.encode()] = entry{key: key.Clone(), blk: blk}
	s.sorted = nil
}

// Delete removes the block at key, if any.
func (s *Store) Delete(key Key) {
	if _, ok := s.entries[key.encode()]; ok {
		delete(s.entries, key.encode())
		s.sorted = nil
	}
}

// sortedKeys (re)builds the cached ascending key order.
func (s *Store) sortedKeys() []Key {
	if s.sorted == nil {
		keys := make([]Key, 0, len(s.entries))
		for _, e := range s.entries {
			keys = append(keys, e.key)
		}
		sort.Slice(keys, func(a, b int) bool { return keys[a].Compare(keys[b]) < 0 })
		s.sorted = keys
	}
	return s.sorted
}

// Keys returns a lazy, restartable sequence of the stored keys in ascending
// lexicographic order. Mutating the store invalidates in-flight iteration.
func (s *Store) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for _, k := range s.sortedKeys() {
			if !yield(k) {
				return
			}
		}
	}
}

// Compact drops every stored block whose entries are all exactly zero.
// Housekeeping only, never required for correctness.
// Complexity: O(total stored elements).
func (s *Store) Compact() {
	for ek, e := range s.entries {
		if e.blk.MaxAbs() == 0 {
			delete(s.entries, ek)
			s.sorted = nil
		}
	}
}

// Clone returns a deep copy: fresh map, fresh keys, fresh block buffers.
// Complexity: O(total stored elements).
func (s *Store) Clone() *Store {
	out := NewStore()
	for _, e := range s.entries {
		out.Set(e.key, e.blk.Clone())
	}
	return out
}
