// File: api/wire.go
// Author: momentics <momentics@gmail.com>
//
// Wire formats exchanged between a MAS server and its clients, per
// SPEC_FULL.md §6.

package api

// AllocateRequest is the body of POST /allocate.
type AllocateRequest struct {
	SizeBytes int64 `json:"size_bytes"`
}

// AllocateResponse is the body returned by a successful POST /allocate.
type AllocateResponse struct {
	ID              Identifier `json:"id"`
	SizeBytes       int64      `json:"size_bytes"`
	ActualSizeBytes int64      `json:"actual_size_bytes"`
	SizeMB          float64    `json:"size_mb"`
	AgeSeconds      int64      `json:"age_seconds"`
}

// ErrorResponse is the body returned alongside a non-2xx allocate/deallocate
// status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthBackendConnection optionally reports the health endpoint's view of
// its own readiness beyond "process is up" — present once any dependency
// beyond in-process state exists. MAS has none today; the field exists so
// the wire contract does not need to change if one is added.
type HealthBackendConnection struct {
	Connected bool `json:"connected"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status            string                   `json:"status"`
	Version           string                   `json:"version"`
	Timestamp         int64                    `json:"timestamp"`
	Memory            StatsResponse            `json:"memory"`
	BackendConnection *HealthBackendConnection `json:"backend_connection,omitempty"`
}

// PoolClassStats is one entry of StatsResponse.PoolStats.
type PoolClassStats struct {
	SlabSize          int64   `json:"slab_size"`
	TotalSlabs        int64   `json:"total_slabs"`
	FreeSlabs         int64   `json:"free_slabs"`
	InUseSlabs        int64   `json:"in_use_slabs"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	ActiveAllocations    int64            `json:"active_allocations"`
	TotalAllocations     int64            `json:"total_allocations"`
	TotalAllocatedBytes  int64            `json:"total_allocated_bytes"`
	TotalInUseBytes      int64            `json:"total_in_use_bytes"`
	MaxPoolSize          int64            `json:"max_pool_size"`
	UtilizationPercent   float64          `json:"utilization_percent"`
	PoolStats            []PoolClassStats `json:"pool_stats"`
}
