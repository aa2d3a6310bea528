package consumer

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/momentics/maas/api"
	"github.com/momentics/maas/client"
	"github.com/momentics/maas/server"
)

func TestAllocateChunkBytes_NoAllocatorInstalled(t *testing.T) {
	SetAllocator(nil)
	buf := AllocateChunkBytes(128)
	if len(buf) != 128 {
		t.Fatalf("expected a 128-byte local buffer, got %d", len(buf))
	}
	DeallocateChunkBytes(buf) // must not panic with no allocator installed
}

func TestAllocateChunkBytes_UsesInstalledAllocator(t *testing.T) {
	s, err := server.New(&server.Config{
		ListenAddr:   ":0",
		SizeClasses:  []api.SizeClassConfig{{WidthBytes: 1024, InitialSlabs: 1}},
		MaxPoolBytes: 1 << 20,
	})
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	c := client.New(&client.Config{BaseURL: srv.URL, RequestTimeout: 2 * time.Second, FallbackEnabled: true})
	defer c.Close()

	SetAllocator(NewChunkAllocator(c))
	defer SetAllocator(nil)

	buf := AllocateChunkBytes(500)
	if len(buf) != 1024 {
		t.Fatalf("expected a 1024-byte remote slab, got %d", len(buf))
	}

	DeallocateChunkBytes(buf)
	if c.Stats().OutstandingRemote != 0 {
		t.Fatal("expected DeallocateChunkBytes to release the tracked remote allocation")
	}
}
