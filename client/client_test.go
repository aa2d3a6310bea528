package client

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/momentics/maas/api"
	internalserver "github.com/momentics/maas/server"
)

func newTestMASServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &internalserver.Config{
		ListenAddr:   ":0",
		SizeClasses:  []api.SizeClassConfig{{WidthBytes: 1024, InitialSlabs: 2}},
		MaxPoolBytes: 1 << 20,
	}
	s, err := internalserver.New(cfg)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}

	return httptest.NewServer(s.Handler())
}

func TestAllocateFree_RemoteRoundTrip(t *testing.T) {
	srv := newTestMASServer(t)
	defer srv.Close()

	c := New(&Config{BaseURL: srv.URL, RequestTimeout: 2 * time.Second, FallbackEnabled: true})
	defer c.Close()

	buf, err := c.Allocate(500)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(buf) != 1024 {
		t.Fatalf("expected a 1024-byte remote slab, got %d", len(buf))
	}
	if stats := c.Stats(); stats.RemoteAllocations != 1 {
		t.Fatalf("expected 1 remote allocation, got %d", stats.RemoteAllocations)
	}

	if err := c.Free(buf); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if stats := c.Stats(); stats.OutstandingRemote != 0 {
		t.Fatalf("expected 0 outstanding remote allocations after Free, got %d", stats.OutstandingRemote)
	}
}

func TestAllocate_FallsBackWhenServerUnreachable(t *testing.T) {
	c := New(&Config{BaseURL: "http://127.0.0.1:1", RequestTimeout: 200 * time.Millisecond, FallbackEnabled: true})
	defer c.Close()

	buf, err := c.Allocate(500)
	if err != nil {
		t.Fatalf("expected local fallback to succeed, got %v", err)
	}
	if len(buf) != 500 {
		t.Fatalf("expected a 500-byte local buffer, got %d", len(buf))
	}

	stats := c.Stats()
	if stats.LocalAllocations != 1 || stats.FallbackCount != 1 {
		t.Fatalf("expected one local allocation and one fallback, got %+v", stats)
	}
}

func TestAllocate_FailsWithoutFallback(t *testing.T) {
	c := New(&Config{BaseURL: "http://127.0.0.1:1", RequestTimeout: 200 * time.Millisecond, FallbackEnabled: false})
	defer c.Close()

	if _, err := c.Allocate(500); err == nil {
		t.Fatal("expected an error when the server is unreachable and fallback is disabled")
	}
}

func TestFree_LocalBufferIsNoop(t *testing.T) {
	c := New(&Config{BaseURL: "http://127.0.0.1:1", FallbackEnabled: true})
	defer c.Close()

	buf := make([]byte, 128)
	if err := c.Free(buf); err != nil {
		t.Fatalf("expected Free on an untracked buffer to be a no-op, got %v", err)
	}
}
