// File: client/healthlog.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// healthLog keeps a bounded ring of recent health-probe outcomes for
// diagnostics, backed by github.com/eapache/queue the way the teacher
// repo declares it (go.mod) without ever calling it — here it is
// actually exercised as the health monitor's ring buffer.

package client

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// probeResult is one outcome recorded by the health monitor.
type probeResult struct {
	At      time.Time
	Healthy bool
	Err     error
}

type healthLog struct {
	mu       sync.Mutex
	q        *queue.Queue
	capacity int
}

func newHealthLog(capacity int) *healthLog {
	if capacity <= 0 {
		capacity = 1
	}
	return &healthLog{q: queue.New(), capacity: capacity}
}

func (h *healthLog) record(r probeResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.q.Add(r)
	for h.q.Length() > h.capacity {
		h.q.Remove()
	}
}

// recent returns every probe outcome currently retained, oldest first.
func (h *healthLog) recent() []probeResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]probeResult, 0, h.q.Length())
	for i := 0; i < h.q.Length(); i++ {
		out = append(out, h.q.Get(i).(probeResult))
	}
	return out
}
