// File: internal/slab/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package slab

import (
	"sync/atomic"
	"time"

	"github.com/momentics/maas/internal/concurrency"
)

// freeListCapacity bounds each class's lock-free free list. It is sized
// generously so that Enqueue only fails under genuinely pathological
// churn; a failed Enqueue just means the slab is released instead of
// recycled, never an allocation error.
const freeListCapacity = 1 << 16

// classPool holds every slab belonging to one size class: the free list
// plus bookkeeping for how many slabs of this width exist and how many
// are currently checked out.
type classPool struct {
	width int64

	free       *concurrency.LockFreeQueue[*Slab]
	totalSlabs atomic.Int64
	inUse      atomic.Int64
	reuseTotal atomic.Uint64
}

func newClassPool(width int64, initialSlabs int) *classPool {
	p := &classPool{
		width: width,
		free:  concurrency.NewLockFreeQueue[*Slab](freeListCapacity),
	}
	for i := 0; i < initialSlabs; i++ {
		s := &Slab{Width: width, Data: make([]byte, width), CreatedAt: time.Now()}
		p.free.Enqueue(s)
		p.totalSlabs.Add(1)
	}
	return p
}

// take pops a slab off the free list. Reuse is only counted for a slab
// that has previously gone through give — a class's pre-allocated
// slabs are not "reused" the first time they are handed out.
func (p *classPool) take() (*Slab, bool) {
	s, ok := p.free.Dequeue()
	if !ok {
		return nil, false
	}
	if s.recycled {
		s.reuseCount++
		p.reuseTotal.Add(1)
	}
	p.inUse.Add(1)
	return s, true
}

// grow manufactures a brand-new slab for this class. Callers must have
// already reserved width bytes against the allocator's pool ceiling.
func (p *classPool) grow() *Slab {
	s := &Slab{Width: p.width, Data: make([]byte, p.width), CreatedAt: time.Now()}
	p.totalSlabs.Add(1)
	p.inUse.Add(1)
	return s
}

// give returns a slab to the free list, zeroing it first and marking it
// eligible to count as a reuse on its next take. It reports whether the
// slab was recycled; false means the free list was full and the caller
// must release the reserved bytes instead.
func (p *classPool) give(s *Slab) bool {
	s.zero()
	s.recycled = true
	p.inUse.Add(-1)
	if p.free.Enqueue(s) {
		return true
	}
	p.totalSlabs.Add(-1)
	return false
}

func (p *classPool) snapshot() ClassSnapshot {
	return ClassSnapshot{
		Width:      p.width,
		TotalSlabs: p.totalSlabs.Load(),
		InUse:      p.inUse.Load(),
		ReuseTotal: p.reuseTotal.Load(),
	}
}

// ClassSnapshot is a point-in-time view of one size class.
type ClassSnapshot struct {
	Width      int64
	TotalSlabs int64
	InUse      int64
	ReuseTotal uint64
}

// FreeSlabs is how many slabs of this class currently sit on the free
// list, derived rather than stored so it can never drift out of sync.
func (c ClassSnapshot) FreeSlabs() int64 {
	return c.TotalSlabs - c.InUse
}

// UtilizationPercent is this class's in-use slabs as a percentage of the
// slabs it has ever grown to.
func (c ClassSnapshot) UtilizationPercent() float64 {
	if c.TotalSlabs == 0 {
		return 0
	}
	return float64(c.InUse) / float64(c.TotalSlabs) * 100
}
