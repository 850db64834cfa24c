package engine

import (
	"testing"
	"time"

	"veneziabot/internal/business"
)

func TestSessionHistoryBounded(t *testing.T) {
	s := newSession(4)
	for i := 0; i < 10; i++ {
		s.append(newMessage(i%2 == 0, "m", time.Now()))
	}
	if got := len(s.tail(100)); got != 4 {
		t.Fatalf("history length = %d, want 4", got)
	}
}

func TestSessionTailOrder(t *testing.T) {
	s := newSession(10)
	s.append(newMessage(true, "primero", time.Now()))
	s.append(newMessage(false, "segundo", time.Now()))
	s.append(newMessage(true, "tercero", time.Now()))

	tail := s.tail(2)
	if len(tail) != 2 || tail[0].Text != "segundo" || tail[1].Text != "tercero" {
		t.Fatalf("tail = %+v", tail)
	}
}

func TestMessageIDsAreUnique(t *testing.T) {
	a := newMessage(true, "x", time.Now())
	b := newMessage(true, "x", time.Now())
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids = %q, %q", a.ID, b.ID)
	}
}

func TestGenerationCounter(t *testing.T) {
	s := newSession(10)
	g1 := s.begin()
	if !s.current(g1) {
		t.Fatal("fresh generation not current")
	}
	g2 := s.begin()
	if s.current(g1) {
		t.Fatal("old generation still current")
	}
	if !s.current(g2) {
		t.Fatal("new generation not current")
	}
}

func TestSuggestionsFor(t *testing.T) {
	snap := business.Snapshot{
		LowStock: []business.LowStockAlert{{Name: "Helado Vainilla", Stock: 2, Needed: 8}},
	}
	got := suggestionsFor(snap, 9)
	if len(got) == 0 || got[0] != "Productos con stock bajo" {
		t.Fatalf("low stock not prioritized: %v", got)
	}

	evening := suggestionsFor(business.Snapshot{}, 21)
	if len(evening) == 0 || evening[0] != "Balance del día" {
		t.Fatalf("evening suggestions = %v", evening)
	}
}
