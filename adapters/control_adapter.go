// Package adapters
// Author: momentics <momentics@gmail.com>
//
// ControlAdapter implements api.Control over control.DebugProbes; the
// stats half of the interface is supplied by the caller as a closure,
// typically one that reads a server's slab allocator and registry.

package adapters

import (
	"github.com/momentics/maas/api"
	"github.com/momentics/maas/control"
)

// ControlAdapter implements api.Control.
type ControlAdapter struct {
	statsFn func() map[string]any
	debug   *control.DebugProbes
}

// NewControlAdapter builds a ControlAdapter. statsFn supplies the merged
// stats dump returned by Stats().
func NewControlAdapter(statsFn func() map[string]any) api.Control {
	adapter := &ControlAdapter{
		statsFn: statsFn,
		debug:   control.NewDebugProbes(),
	}
	control.RegisterPlatformProbes(adapter.debug)
	return adapter
}

// Stats returns the caller-supplied stats merged with every registered
// debug probe's current value, probes prefixed with "debug." to avoid
// colliding with stats keys.
func (c *ControlAdapter) Stats() map[string]any {
	combined := make(map[string]any)
	if c.statsFn != nil {
		for k, v := range c.statsFn() {
			combined[k] = v
		}
	}
	for k, v := range c.debug.DumpState() {
		combined["debug."+k] = v
	}
	return combined
}

// RegisterDebugProbe registers a named debug hook.
func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}
