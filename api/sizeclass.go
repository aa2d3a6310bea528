// File: api/sizeclass.go
// Author: momentics <momentics@gmail.com>
//
// Size-class configuration shared between the allocator and its config
// loader. Size classes are purely configuration-driven (see SPEC_FULL.md
// §6(a)) — nothing here hard-codes a particular ladder of widths.

package api

// SizeClassConfig describes one fixed-width slab pool.
type SizeClassConfig struct {
	// WidthBytes is this class's slab width. Widths must be strictly
	// increasing across the configured set and at least 1 byte.
	WidthBytes int `json:"width_bytes"`
	// InitialSlabs is how many slabs of this width are pre-allocated
	// at startup.
	InitialSlabs int `json:"initial_slabs"`
}
