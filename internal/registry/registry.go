// File: internal/registry/registry.go
// Package registry tracks which allocation identifiers are currently
// outstanding and which slab backs each one, per SPEC_FULL.md §4.2.
//
// Grounded on the mutex-guarded map bookkeeping in
// original_source/prometheus/tsdb/maas/allocator.go's ChunkAllocator
// (chunkToAlloc map[uintptr]string guarded by sync.RWMutex) and on the
// Rust reference's allocations: Mutex<HashMap<Uuid, (usize, Uuid)>> in
// original_source/maas-backend/src/slab.rs, generalized from an
// address-keyed map to an identifier-keyed one since the server side
// never sees client memory addresses.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package registry

import (
	"sync"

	"github.com/momentics/maas/api"
	"github.com/momentics/maas/internal/slab"
)

// Registry maps outstanding allocation identifiers to the slab backing
// them. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[api.Identifier]*slab.Slab
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[api.Identifier]*slab.Slab)}
}

// Insert records that id is now backed by s. It fails with
// ErrCodeInternal if id is already registered — callers should treat
// that as a signal to regenerate the identifier rather than retry as-is.
func (r *Registry) Insert(id api.Identifier, s *slab.Slab) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return api.NewError(api.ErrCodeInternal, "allocation identifier collision").
			WithContext("id", id.String())
	}
	r.entries[id] = s
	return nil
}

// Remove deletes id from the registry and returns the slab it was
// backing. It fails with ErrCodeUnknownAllocation if id is not present.
func (r *Registry) Remove(id api.Identifier) (*slab.Slab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.entries[id]
	if !exists {
		return nil, api.NewError(api.ErrCodeUnknownAllocation, "no allocation with this identifier").
			WithContext("id", id.String())
	}
	delete(r.entries, id)
	return s, nil
}

// Lookup returns the slab backing id without removing it, for read-only
// inspection (e.g. the server's check for an identifier collision).
func (r *Registry) Lookup(id api.Identifier) (*slab.Slab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.entries[id]
	return s, ok
}

// Len returns the number of outstanding allocations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a copy of every outstanding (identifier, slab) pair.
// The allocate/deallocate path does not call it.
func (r *Registry) Snapshot() map[api.Identifier]*slab.Slab {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[api.Identifier]*slab.Slab, len(r.entries))
	for id, s := range r.entries {
		out[id] = s
	}
	return out
}
