// File: server/config.go
// Package server implements the MAS HTTP server: allocate/deallocate
// endpoints, health and stats reporting, and a Prometheus exposition
// endpoint, per SPEC_FULL.md §4.4.
//
// Config/DefaultConfig and the functional-option pattern below are
// grounded on server/types.go and server/options.go in the teacher repo.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"time"

	"github.com/momentics/maas/api"
)

// Config holds every server-side tunable.
type Config struct {
	ListenAddr      string                 // TCP bind address, e.g. ":9100"
	SizeClasses     []api.SizeClassConfig  // ascending ladder of slab widths
	MaxPoolBytes    int64                  // global ceiling on committed slab bytes
	ReadTimeout     time.Duration          // http.Server.ReadTimeout
	WriteTimeout    time.Duration          // http.Server.WriteTimeout
	ShutdownTimeout time.Duration          // grace period for in-flight requests on Shutdown
}

// DefaultConfig returns a server configuration with a modest size-class
// ladder suitable for local development and tests.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":9100",
		SizeClasses: []api.SizeClassConfig{
			{WidthBytes: 1024, InitialSlabs: 16},
			{WidthBytes: 4096, InitialSlabs: 16},
			{WidthBytes: 16384, InitialSlabs: 8},
			{WidthBytes: 65536, InitialSlabs: 4},
			{WidthBytes: 1048576, InitialSlabs: 0},
		},
		MaxPoolBytes:    256 * 1024 * 1024,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}
