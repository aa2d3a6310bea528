// File: api/control.go
// Package api defines the Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control exposes runtime diagnostics (debug probes and a merged stats
// dump) independent of the Prometheus exposition path. It is consulted
// by the optional /debug endpoint, never by the hot allocate/deallocate
// path.
type Control interface {
	Stats() map[string]any
	RegisterDebugProbe(name string, fn func() any)
}
