// File: internal/telemetry/telemetry.go
// Package telemetry exposes the allocator's state as Prometheus metrics
// and as the JSON StatsResponse served by GET /stats, per
// SPEC_FULL.md §4.3.
//
// Grounded on the custom prometheus.Collector idiom in
// containers-nri-plugins/pkg/metrics/metrics.go (Describe/Collect
// wrapping an internal snapshot) adapted from that file's generic
// collector-group registry to a single fixed Collector over one
// Allocator and Registry, using github.com/prometheus/client_golang
// directly rather than the plugin's own registration layer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/maas/api"
	"github.com/momentics/maas/internal/registry"
	"github.com/momentics/maas/internal/slab"
)

// Collector implements prometheus.Collector over a slab allocator and
// its allocation registry.
type Collector struct {
	allocator *slab.Allocator
	reg       *registry.Registry

	activeAllocations *prometheus.Desc
	allocationSize     *prometheus.Desc
	poolSizeBytes      *prometheus.Desc
	utilizationPercent *prometheus.Desc
	requestCount       *prometheus.Desc
	slabReuseTotal     *prometheus.Desc
}

// New returns a Collector reporting on allocator and reg. It must be
// registered with a prometheus.Registerer before /metrics serves it.
func New(allocator *slab.Allocator, reg *registry.Registry) *Collector {
	return &Collector{
		allocator: allocator,
		reg:       reg,
		activeAllocations: prometheus.NewDesc(
			"maas_active_allocations", "Number of allocations currently outstanding.", nil, nil),
		allocationSize: prometheus.NewDesc(
			"maas_allocation_size_bytes", "Distribution of outstanding allocation sizes in bytes, bucketed by size class.", nil, nil),
		poolSizeBytes: prometheus.NewDesc(
			"maas_pool_size_bytes", "Bytes committed to a size class's slab pool.", []string{"size"}, nil),
		utilizationPercent: prometheus.NewDesc(
			"maas_utilization_percent", "Total allocated bytes as a percentage of the configured pool ceiling.", nil, nil),
		requestCount: prometheus.NewDesc(
			"maas_request_count", "Total allocate requests served since startup.", nil, nil),
		slabReuseTotal: prometheus.NewDesc(
			"maas_slab_reuse_total", "Total times a freed slab has been handed out again from a free list.", []string{"size"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.activeAllocations
	ch <- c.allocationSize
	ch <- c.poolSizeBytes
	ch <- c.utilizationPercent
	ch <- c.requestCount
	ch <- c.slabReuseTotal
}

// Collect implements prometheus.Collector. It is called synchronously on
// every scrape, so it only reads the allocator's already-maintained
// atomic counters — it never walks the registry's allocation map, which
// stays off the hot telemetry path.
//
// Every series here is emitted at most once per size class per scrape:
// walking outstanding allocations one by one would emit one
// maas_allocation_size_bytes/maas_slab_reuse_total series per
// allocation, and two allocations sharing a size (or a size-class's
// reuse count) collide on identical label sets, which fails
// prometheus.Registry.Gather's duplicate-series check and turns
// GET /metrics into a 500.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.allocator.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.activeAllocations, prometheus.GaugeValue, float64(snap.ActiveAllocations()))
	ch <- prometheus.MustNewConstMetric(c.utilizationPercent, prometheus.GaugeValue, snap.UtilizationPercent())
	ch <- prometheus.MustNewConstMetric(c.requestCount, prometheus.CounterValue, float64(snap.TotalAllocations))

	buckets := make(map[float64]uint64, len(snap.Classes))
	var cumulative uint64
	var sizeSum float64
	for _, cs := range snap.Classes {
		size := classLabel(cs.Width)
		ch <- prometheus.MustNewConstMetric(c.poolSizeBytes, prometheus.GaugeValue, float64(cs.TotalSlabs*cs.Width), size)
		ch <- prometheus.MustNewConstMetric(c.slabReuseTotal, prometheus.CounterValue, float64(cs.ReuseTotal), size)

		cumulative += uint64(cs.InUse)
		buckets[float64(cs.Width)] = cumulative
		sizeSum += float64(cs.Width) * float64(cs.InUse)
	}
	ch <- prometheus.MustNewConstHistogram(c.allocationSize, cumulative, sizeSum, buckets)
}

func classLabel(width int64) string {
	return strconv.FormatInt(width, 10)
}

// Stats derives the JSON body of GET /stats from the allocator's current
// snapshot. reg is not consulted.
func Stats(allocator *slab.Allocator, reg *registry.Registry) api.StatsResponse {
	snap := allocator.Snapshot()

	pools := make([]api.PoolClassStats, len(snap.Classes))
	for i, cs := range snap.Classes {
		pools[i] = api.PoolClassStats{
			SlabSize:           cs.Width,
			TotalSlabs:         cs.TotalSlabs,
			FreeSlabs:          cs.FreeSlabs(),
			InUseSlabs:         cs.InUse,
			UtilizationPercent: cs.UtilizationPercent(),
		}
	}

	return api.StatsResponse{
		ActiveAllocations:   snap.ActiveAllocations(),
		TotalAllocations:    int64(snap.TotalAllocations),
		TotalAllocatedBytes: snap.TotalAllocatedBytes,
		TotalInUseBytes:     snap.TotalInUseBytes,
		MaxPoolSize:         snap.MaxPoolBytes,
		UtilizationPercent:  snap.UtilizationPercent(),
		PoolStats:           pools,
	}
}
