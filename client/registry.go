// File: client/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// addressRegistry keys outstanding allocations by the address of their
// backing buffer, exactly the technique in
// original_source/prometheus/tsdb/maas/allocator.go's
// ChunkAllocator.chunkToAlloc map[uintptr]string, so callers can free a
// []byte they received from Allocate without separately threading an
// identifier through their own code.

package client

import (
	"sync"
	"unsafe"

	"github.com/momentics/maas/api"
)

type addressRegistry struct {
	mu      sync.Mutex
	entries map[uintptr]api.Identifier
}

func newAddressRegistry() *addressRegistry {
	return &addressRegistry{entries: make(map[uintptr]api.Identifier)}
}

func addressOf(buf []byte) uintptr {
	if len(buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&buf[0]))
}

func (r *addressRegistry) track(buf []byte, id api.Identifier) {
	addr := addressOf(buf)
	if addr == 0 {
		return
	}
	r.mu.Lock()
	r.entries[addr] = id
	r.mu.Unlock()
}

// take removes and returns the identifier tracked for buf, if any. The
// mutex is never held across a network call — the caller does the
// transport round trip after take returns.
func (r *addressRegistry) take(buf []byte) (api.Identifier, bool) {
	addr := addressOf(buf)
	if addr == 0 {
		return api.Identifier{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.entries[addr]
	if ok {
		delete(r.entries, addr)
	}
	return id, ok
}

func (r *addressRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
