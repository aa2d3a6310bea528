package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/momentics/maas/api"
	"github.com/momentics/maas/internal/registry"
	"github.com/momentics/maas/internal/slab"
)

func newFixture(t *testing.T) (*slab.Allocator, *registry.Registry) {
	t.Helper()
	a, err := slab.NewAllocator([]api.SizeClassConfig{{WidthBytes: 1024, InitialSlabs: 1}}, 1<<20)
	if err != nil {
		t.Fatalf("NewAllocator: %v", err)
	}
	return a, registry.New()
}

func TestStats_ReflectsOutstandingAllocations(t *testing.T) {
	a, reg := newFixture(t)

	s, err := a.Allocate(500)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	id, err := api.NewIdentifier()
	if err != nil {
		t.Fatalf("NewIdentifier: %v", err)
	}
	if err := reg.Insert(id, s); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	stats := Stats(a, reg)
	if stats.ActiveAllocations != 1 {
		t.Fatalf("expected 1 active allocation, got %d", stats.ActiveAllocations)
	}
	if len(stats.PoolStats) != 1 || stats.PoolStats[0].SlabSize != 1024 {
		t.Fatalf("expected a single 1024-byte pool entry, got %+v", stats.PoolStats)
	}
}

func TestCollector_GatherTwoSameSizeAllocationsSucceeds(t *testing.T) {
	a, reg := newFixture(t)
	if _, err := a.Allocate(500); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if _, err := a.Allocate(500); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	promReg := prometheus.NewRegistry()
	if err := promReg.Register(New(a, reg)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := promReg.Gather(); err != nil {
		t.Fatalf("expected Gather to succeed with two same-size outstanding allocations, got %v", err)
	}
}

func TestCollector_SlabReuseTotalIsMonotonicAfterFree(t *testing.T) {
	a, reg := newFixture(t)
	s, err := a.Allocate(500)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	a.Free(s)
	if _, err := a.Allocate(500); err != nil {
		t.Fatalf("Allocate after Free: %v", err)
	}

	c := New(a, reg)
	ch := make(chan prometheus.Metric, 64)
	go func() {
		c.Collect(ch)
		close(ch)
	}()

	var sawReuse bool
	for m := range ch {
		if m.Desc() == c.slabReuseTotal {
			var pb dto.Metric
			if err := m.Write(&pb); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if pb.Counter.GetValue() > 0 {
				sawReuse = true
			}
		}
	}
	if !sawReuse {
		t.Fatal("expected maas_slab_reuse_total to report the recycle even though the reused slab is no longer in the registry")
	}
}

func TestCollector_CollectEmitsMetrics(t *testing.T) {
	a, reg := newFixture(t)
	if _, err := a.Allocate(500); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	c := New(a, reg)
	ch := make(chan prometheus.Metric, 64)
	go func() {
		c.Collect(ch)
		close(ch)
	}()

	var count int
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			t.Fatalf("Write: %v", err)
		}
		count++
	}
	if count == 0 {
		t.Fatal("expected Collect to emit at least one metric")
	}
}
