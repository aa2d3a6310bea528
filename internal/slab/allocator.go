// File: internal/slab/allocator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Allocator routes every request to the smallest size class that fits,
// per SPEC_FULL.md §6(a): size classes are always consulted, unlike the
// Rust reference's handlers.rs/state.rs path which bypassed slab.rs's
// SlabAllocator entirely and allocated from a flat map instead.

package slab

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/momentics/maas/api"
)

// Allocator is the process-wide slab allocator. One Allocator backs one
// MAS server instance; it is safe for concurrent use.
type Allocator struct {
	classes    []*classPool // ascending by width
	classByLen map[int64]*classPool

	maxPoolBytes int64

	// mu guards totalBytes together with the decision to grow a class,
	// so the ceiling check and the reservation happen atomically. The
	// free-list fast paths (take/give) never take mu.
	mu         sync.Mutex
	totalBytes int64

	totalAllocations atomic.Uint64
}

// NewAllocator builds an Allocator from an ascending, strictly-increasing
// ladder of size classes. initialSlabs for every class are pre-allocated
// immediately, counted against maxPoolBytes.
func NewAllocator(classes []api.SizeClassConfig, maxPoolBytes int64) (*Allocator, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("slab: at least one size class is required")
	}
	a := &Allocator{
		classByLen:   make(map[int64]*classPool, len(classes)),
		maxPoolBytes: maxPoolBytes,
	}

	var prevWidth int64 = -1
	var reserved int64
	for _, c := range classes {
		width := int64(c.WidthBytes)
		if width <= 0 {
			return nil, fmt.Errorf("slab: size class width must be positive, got %d", width)
		}
		if width <= prevWidth {
			return nil, fmt.Errorf("slab: size class widths must be strictly increasing, got %d after %d", width, prevWidth)
		}
		prevWidth = width

		reserved += width * int64(c.InitialSlabs)
		if reserved > maxPoolBytes {
			return nil, fmt.Errorf("slab: initial slabs for class %d exceed max pool size %d bytes", width, maxPoolBytes)
		}

		cp := newClassPool(width, c.InitialSlabs)
		a.classes = append(a.classes, cp)
		a.classByLen[width] = cp
	}
	a.totalBytes = reserved

	return a, nil
}

// Allocate returns a slab wide enough to hold n bytes: the smallest
// configured class with width >= n. It fails with ErrCodeInvalidRequest
// for n <= 0, ErrCodeRequestTooLarge if n exceeds every class, and
// ErrCodePoolExhausted if satisfying the request would exceed the
// configured pool ceiling.
func (a *Allocator) Allocate(n int64) (*Slab, error) {
	if n <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidRequest, fmt.Sprintf("requested size must be positive, got %d", n))
	}

	class := a.classFor(n)
	if class == nil {
		return nil, api.NewError(api.ErrCodeRequestTooLarge, fmt.Sprintf("requested size %d exceeds the largest configured size class", n)).
			WithContext("requested_bytes", n)
	}

	if s, ok := class.take(); ok {
		a.totalAllocations.Add(1)
		return s, nil
	}

	a.mu.Lock()
	if a.totalBytes+class.width > a.maxPoolBytes {
		a.mu.Unlock()
		return nil, api.NewError(api.ErrCodePoolExhausted, "allocation pool is exhausted").
			WithContext("max_pool_bytes", a.maxPoolBytes).
			WithContext("requested_class_bytes", class.width)
	}
	a.totalBytes += class.width
	a.mu.Unlock()

	s := class.grow()
	a.totalAllocations.Add(1)
	return s, nil
}

// Free returns s to its size class's free list, zeroing its contents
// first. Free never fails: a full free list just means the slab's bytes
// are released from the ceiling instead of recycled.
func (a *Allocator) Free(s *Slab) {
	class, ok := a.classByLen[s.Width]
	if !ok {
		return // defensive: s did not originate from this allocator
	}
	if !class.give(s) {
		a.mu.Lock()
		a.totalBytes -= class.width
		a.mu.Unlock()
	}
}

// classFor returns the smallest configured class with width >= n, or nil
// if n exceeds every class.
func (a *Allocator) classFor(n int64) *classPool {
	for _, c := range a.classes {
		if c.width >= n {
			return c
		}
	}
	return nil
}

// MaxPoolBytes returns the configured global ceiling.
func (a *Allocator) MaxPoolBytes() int64 {
	return a.maxPoolBytes
}

// Snapshot captures a point-in-time view of every size class plus the
// allocator-wide totals, for the /stats endpoint and the Prometheus
// collector.
func (a *Allocator) Snapshot() Snapshot {
	a.mu.Lock()
	totalBytes := a.totalBytes
	a.mu.Unlock()

	classes := make([]ClassSnapshot, len(a.classes))
	var inUseBytes int64
	for i, c := range a.classes {
		cs := c.snapshot()
		classes[i] = cs
		inUseBytes += cs.InUse * cs.Width
	}

	return Snapshot{
		Classes:             classes,
		TotalAllocatedBytes: totalBytes,
		TotalInUseBytes:     inUseBytes,
		MaxPoolBytes:        a.maxPoolBytes,
		TotalAllocations:    a.totalAllocations.Load(),
	}
}

// Snapshot is an allocator-wide point-in-time view.
type Snapshot struct {
	Classes             []ClassSnapshot
	TotalAllocatedBytes int64
	TotalInUseBytes     int64
	MaxPoolBytes        int64
	TotalAllocations    uint64
}

// ActiveAllocations is the number of slabs currently checked out across
// every size class.
func (s Snapshot) ActiveAllocations() int64 {
	var n int64
	for _, c := range s.Classes {
		n += c.InUse
	}
	return n
}

// UtilizationPercent is total allocated bytes as a percentage of the
// configured ceiling.
func (s Snapshot) UtilizationPercent() float64 {
	if s.MaxPoolBytes == 0 {
		return 0
	}
	return float64(s.TotalAllocatedBytes) / float64(s.MaxPoolBytes) * 100
}
