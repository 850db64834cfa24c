package catalog

import (
	"testing"
	"time"

	"veneziabot/internal/business"
)

func testSnapshot() business.Snapshot {
	return business.Snapshot{
		Products: []business.Product{
			{ID: 1, Name: "Helado Chocolate", Stock: 25, Price: 4500, Active: true},
			{ID: 2, Name: "Helado Dulce de Leche", Stock: 5, Price: 4800, Active: true},
			{ID: 3, Name: "Helado Limón", Stock: 12, Price: 4200, Active: true},
		},
	}
}

func TestResolveExactAndSubstring(t *testing.T) {
	r := NewResolver(0, 0)
	snap := testSnapshot()

	if p := r.Resolve("helado chocolate", snap); p == nil || p.ID != 1 {
		t.Fatalf("exact match failed: %+v", p)
	}
	if p := r.Resolve("chocolate", snap); p == nil || p.ID != 1 {
		t.Fatalf("substring match failed: %+v", p)
	}
	if p := r.Resolve("limón", snap); p == nil || p.ID != 3 {
		t.Fatalf("diacritic fold failed: %+v", p)
	}
}

func TestResolveSynonyms(t *testing.T) {
	r := NewResolver(0, 0)
	snap := testSnapshot()

	if p := r.Resolve("ddl", snap); p == nil || p.ID != 2 {
		t.Fatalf("synonym ddl did not resolve: %+v", p)
	}
	if p := r.Resolve("choco", snap); p == nil || p.ID != 1 {
		t.Fatalf("synonym choco did not resolve: %+v", p)
	}
}

func TestResolveMemoizesMisses(t *testing.T) {
	r := NewResolver(0, 0)
	snap := testSnapshot()

	if p := r.Resolve("pistacho", snap); p != nil {
		t.Fatalf("unexpected hit: %+v", p)
	}
	if r.Size() != 1 {
		t.Fatalf("miss not memoized, size = %d", r.Size())
	}
	// The memoized nil survives even if the snapshot now has the product.
	snap.Products = append(snap.Products, business.Product{ID: 4, Name: "Helado Pistacho", Active: true})
	if p := r.Resolve("pistacho", snap); p != nil {
		t.Fatalf("memoized miss should stick until TTL: %+v", p)
	}
}

func TestResolveTTLExpiry(t *testing.T) {
	r := NewResolver(0, time.Hour)
	now := time.Unix(1000, 0)
	r.SetClock(func() time.Time { return now })

	snap := testSnapshot()
	if p := r.Resolve("pistacho", snap); p != nil {
		t.Fatalf("unexpected hit: %+v", p)
	}

	snap.Products = append(snap.Products, business.Product{ID: 4, Name: "Helado Pistacho", Active: true})
	now = now.Add(2 * time.Hour)
	if p := r.Resolve("pistacho", snap); p == nil || p.ID != 4 {
		t.Fatalf("expired memo should re-resolve: %+v", p)
	}
}

func TestResolveCapacityEviction(t *testing.T) {
	r := NewResolver(2, 0)
	now := time.Unix(1000, 0)
	r.SetClock(func() time.Time { return now })
	snap := testSnapshot()

	r.Resolve("a", snap)
	now = now.Add(time.Second)
	r.Resolve("b", snap)
	now = now.Add(time.Second)
	r.Resolve("c", snap)
	if got := r.Size(); got != 2 {
		t.Fatalf("size = %d, want 2", got)
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	r := NewResolver(0, 0)
	snap := testSnapshot()

	p1 := r.Resolve("chocolate", snap)
	p1.Stock = 9999
	p2 := r.Resolve("chocolate", snap)
	if p2.Stock == 9999 {
		t.Fatal("Resolve leaked a shared pointer")
	}
}
