// File: client/client.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Client chooses between remote (MAS server) and local ([]byte) memory
// for every allocation, falls back to local on transport failure, and
// runs a background health monitor that re-enables the remote path once
// the server recovers — all grounded on MemoryPoolManager in
// original_source/prometheus/tsdb/maas/pool.go, and on the
// ctx/cancel/wg lifecycle in the teacher's client/facade.go.

package client

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Client is a MAS-aware memory allocator: Allocate/Free look identical
// to a plain []byte pool to the caller, whether or not a remote server
// is actually in use.
type Client struct {
	cfg       *Config
	transport *transport
	logger    *slog.Logger

	remoteEnabled atomic.Bool
	addrs         *addressRegistry
	health        *healthLog

	localAllocations  atomic.Uint64
	remoteAllocations atomic.Uint64
	fallbackCount     atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs a Client and starts its background health monitor. It
// does not block on an initial connection: the first Allocate call
// discovers reachability and falls back transparently if cfg.FallbackEnabled.
func New(cfg *Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		cfg:       cfg,
		transport: newTransport(cfg.BaseURL, cfg.RequestTimeout),
		logger:    slog.Default(),
		addrs:     newAddressRegistry(),
		health:    newHealthLog(cfg.HealthLogCapacity),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, o := range opts {
		o(c)
	}

	c.remoteEnabled.Store(true)

	if cfg.HealthCheckInterval > 0 {
		c.wg.Add(1)
		go c.healthMonitor()
	}
	return c
}

// Allocate returns a buffer of at least n bytes. It prefers the remote
// MAS server; on transport failure it falls back to local memory when
// cfg.FallbackEnabled, or returns the error otherwise.
func (c *Client) Allocate(n int64) ([]byte, error) {
	if c.remoteEnabled.Load() {
		resp, err := c.transport.allocate(c.ctx, n)
		if err == nil {
			buf := make([]byte, resp.ActualSizeBytes)
			c.addrs.track(buf, resp.ID)
			c.remoteAllocations.Add(1)
			return buf, nil
		}

		c.logger.Warn("remote allocation failed, falling back to local", "size", n, "error", err)
		c.fallbackCount.Add(1)
		if !c.cfg.FallbackEnabled {
			return nil, err
		}
	}

	c.localAllocations.Add(1)
	return make([]byte, n), nil
}

// Free releases buf. If buf was backed by a remote allocation, Free
// issues the matching DELETE; otherwise it is a no-op and the garbage
// collector reclaims buf normally.
func (c *Client) Free(buf []byte) error {
	id, ok := c.addrs.take(buf)
	if !ok {
		return nil // local allocation, nothing to release remotely
	}
	return c.transport.deallocate(c.ctx, id)
}

// Stats reports allocation counters for diagnostics.
type Stats struct {
	LocalAllocations  uint64
	RemoteAllocations uint64
	FallbackCount     uint64
	RemoteEnabled     bool
	OutstandingRemote int
}

// Stats returns a snapshot of the client's allocation counters.
func (c *Client) Stats() Stats {
	return Stats{
		LocalAllocations:  c.localAllocations.Load(),
		RemoteAllocations: c.remoteAllocations.Load(),
		FallbackCount:     c.fallbackCount.Load(),
		RemoteEnabled:     c.remoteEnabled.Load(),
		OutstandingRemote: c.addrs.len(),
	}
}

// Close stops the health monitor and waits for it to exit.
func (c *Client) Close() error {
	c.cancel()
	c.wg.Wait()
	return nil
}

// healthMonitor periodically probes GET /health and flips remoteEnabled
// accordingly, mirroring MemoryPoolManager.healthMonitor.
func (c *Client) healthMonitor() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			err := c.transport.checkHealth(c.ctx)
			c.health.record(probeResult{At: time.Now(), Healthy: err == nil, Err: err})

			if err != nil {
				if c.remoteEnabled.CompareAndSwap(true, false) {
					c.logger.Warn("mas health check failed, disabling remote allocation", "error", err)
				}
			} else if c.remoteEnabled.CompareAndSwap(false, true) {
				c.logger.Info("mas health check succeeded, re-enabling remote allocation")
			}
		}
	}
}

// recentHealth returns the probe outcomes the health monitor has
// retained, oldest first.
func (c *Client) recentHealth() []probeResult {
	return c.health.recent()
}
