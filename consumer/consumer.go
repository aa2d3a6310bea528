// File: consumer/consumer.go
// Package consumer is the supplemented TSDB-style integration shim
// SPEC_FULL.md §4.5 calls for: a process-wide allocator any chunk-sized
// allocation site can reach through a package-level setter, instead of
// threading a *client.Client through every call site.
//
// Grounded directly on ChunkAllocator in
// original_source/prometheus/tsdb/maas/allocator.go (size-driven
// allocate/deallocate delegating to a pool manager, tracked by buffer
// address) and on the global-allocator/fallback pattern in
// original_source/prometheus/tsdb/chunkenc/maas_integration.go.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package consumer

import (
	"fmt"

	"github.com/momentics/maas/client"
)

// ChunkAllocator adapts a client.Client to the allocate-by-size,
// free-by-slice shape a TSDB-style consumer expects, independent of
// whether the backing allocation ended up remote or local.
type ChunkAllocator struct {
	remote *client.Client
}

// NewChunkAllocator wraps remote. remote may be nil, in which case every
// AllocateChunk call falls back to plain local allocation.
func NewChunkAllocator(remote *client.Client) *ChunkAllocator {
	return &ChunkAllocator{remote: remote}
}

// AllocateChunk returns a buffer of at least size bytes.
func (ca *ChunkAllocator) AllocateChunk(size int) ([]byte, error) {
	if ca.remote == nil {
		return make([]byte, size), nil
	}
	data, err := ca.remote.Allocate(int64(size))
	if err != nil {
		return nil, fmt.Errorf("consumer: allocate chunk: %w", err)
	}
	return data, nil
}

// DeallocateChunk releases chunk. It is a no-op for chunks this
// allocator never tracked (local allocations, or ca.remote == nil).
func (ca *ChunkAllocator) DeallocateChunk(chunk []byte) error {
	if ca.remote == nil || len(chunk) == 0 {
		return nil
	}
	return ca.remote.Free(chunk)
}

// global is the process-wide allocator consulted by AllocateChunkBytes.
// It starts nil, meaning every call falls back to plain local memory
// until SetAllocator is called — mirroring globalMaaSAllocator in
// maas_integration.go.
var global *ChunkAllocator

// SetAllocator installs the process-wide chunk allocator.
func SetAllocator(ca *ChunkAllocator) {
	global = ca
}

// AllocateChunkBytes allocates size bytes using the process-wide
// allocator if one has been installed, falling back to native []byte
// allocation on either a nil allocator or a failed remote call.
func AllocateChunkBytes(size int) []byte {
	if global == nil {
		return make([]byte, size)
	}
	data, err := global.AllocateChunk(size)
	if err != nil {
		return make([]byte, size)
	}
	return data
}

// DeallocateChunkBytes releases chunk via the process-wide allocator, if
// one is installed and actually tracked it.
func DeallocateChunkBytes(chunk []byte) {
	if global == nil {
		return
	}
	_ = global.DeallocateChunk(chunk)
}
