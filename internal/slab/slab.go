// File: internal/slab/slab.go
// Package slab implements the fixed-size-class memory allocator at the
// heart of the MAS server, per SPEC_FULL.md §4.1.
//
// Grounded on pool/slab_pool.go (size-keyed pool, queue-backed free list,
// atomic counters) generalized from a single NUMA-indexed pool to an
// ordered ladder of size classes, and on the allocate/deallocate/ceiling
// bookkeeping in original_source/maas-backend/src/slab.rs.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package slab

import "time"

// Slab is one fixed-width block of memory. The zero value is not usable;
// slabs are always constructed by an Allocator.
type Slab struct {
	Width     int64
	Data      []byte
	CreatedAt time.Time

	reuseCount uint64
	recycled   bool
}

// ReuseCount reports how many times this slab has been handed out again
// after being freed. A pre-allocated slab's first hand-out from the free
// list is not counted. It is exposed for diagnostics,
// not consulted by the allocation path itself.
func (s *Slab) ReuseCount() uint64 {
	return s.reuseCount
}

// AgeSeconds reports how long this slab has existed, for the wire
// AllocateResponse.AgeSeconds field.
func (s *Slab) AgeSeconds() int64 {
	return int64(time.Since(s.CreatedAt).Seconds())
}

func (s *Slab) zero() {
	clear(s.Data)
}
