// File: client/config.go
// Package client implements the MAS consumer-side client: a remote
// allocator with automatic fallback to local memory, per
// SPEC_FULL.md §5.
//
// Config/DefaultConfig mirrors client/facade.go's Config/DefaultConfig
// in the teacher repo.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package client

import "time"

// Config holds every client-side tunable.
type Config struct {
	BaseURL            string        // MAS server base URL, e.g. "http://localhost:9100"
	RequestTimeout     time.Duration // per-request HTTP timeout
	HealthCheckInterval time.Duration // interval between background health probes
	FallbackEnabled    bool          // allow local memory when the server is unreachable
	HealthLogCapacity  int           // how many recent health probe outcomes to retain
}

// DefaultConfig returns sensible defaults for a consumer running
// alongside a local MAS server.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:             "http://localhost:9100",
		RequestTimeout:      10 * time.Second,
		HealthCheckInterval: 30 * time.Second,
		FallbackEnabled:     true,
		HealthLogCapacity:   32,
	}
}
