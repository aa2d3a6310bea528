package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/momentics/maas/api"
	"github.com/momentics/maas/internal/slab"
)

func newID(t *testing.T) api.Identifier {
	t.Helper()
	id, err := api.NewIdentifier()
	if err != nil {
		t.Fatalf("NewIdentifier: %v", err)
	}
	return id
}

func newSlab() *slab.Slab {
	return &slab.Slab{Width: 1024, Data: make([]byte, 1024), CreatedAt: time.Now()}
}

func TestInsertAndLookup(t *testing.T) {
	r := New()
	id := newID(t)
	s := newSlab()

	if err := r.Insert(id, s); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, ok := r.Lookup(id)
	if !ok || got != s {
		t.Fatalf("expected Lookup to find the inserted slab, got %v ok=%v", got, ok)
	}
	if r.Len() != 1 {
		t.Fatalf("expected Len 1, got %d", r.Len())
	}
}

func TestInsert_CollisionFails(t *testing.T) {
	r := New()
	id := newID(t)

	if err := r.Insert(id, newSlab()); err != nil {
		t.Fatalf("first Insert: %v", err)
	}

	err := r.Insert(id, newSlab())
	if err == nil {
		t.Fatal("expected an error inserting a duplicate identifier")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Code != api.ErrCodeInternal {
		t.Fatalf("expected ErrCodeInternal, got %v", err)
	}
}

func TestRemove_UnknownIdentifierFails(t *testing.T) {
	r := New()
	_, err := r.Remove(newID(t))
	if err == nil {
		t.Fatal("expected an error removing an unregistered identifier")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Code != api.ErrCodeUnknownAllocation {
		t.Fatalf("expected ErrCodeUnknownAllocation, got %v", err)
	}
}

func TestRemove_DeletesEntry(t *testing.T) {
	r := New()
	id := newID(t)
	s := newSlab()
	if err := r.Insert(id, s); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := r.Remove(id)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got != s {
		t.Fatal("expected Remove to return the slab that was registered")
	}
	if r.Len() != 0 {
		t.Fatalf("expected Len 0 after Remove, got %d", r.Len())
	}
	if _, ok := r.Lookup(id); ok {
		t.Fatal("expected Lookup to miss after Remove")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	r := New()
	id := newID(t)
	if err := r.Insert(id, newSlab()); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	snap := r.Snapshot()
	delete(snap, id)

	if r.Len() != 1 {
		t.Fatal("mutating a Snapshot must not affect the registry")
	}
}
