package fallback

import (
	"strings"
	"testing"

	"veneziabot/internal/business"
)

func TestLocalKeywordMatch(t *testing.T) {
	l := NewLocal()

	cases := []struct {
		in   string
		want string
	}{
		{"hola que tal", "Hola"},
		{"necesito ver el stock", "producto"},
		{"algo sobre precio", "precio"},
		{"dame ayuda", "Inventario"},
	}
	for _, tc := range cases {
		got, ok := l.Respond(tc.in, business.Snapshot{})
		if !ok {
			t.Errorf("Respond(%q) did not match", tc.in)
			continue
		}
		if !strings.Contains(got, tc.want) {
			t.Errorf("Respond(%q) = %q, missing %q", tc.in, got, tc.want)
		}
	}
}

func TestLocalNoMatch(t *testing.T) {
	l := NewLocal()
	if _, ok := l.Respond("xyzzy", business.Snapshot{}); ok {
		t.Fatal("matched nonsense input")
	}
}

func TestLocalUsesSnapshotContext(t *testing.T) {
	l := NewLocal()
	snap := business.Snapshot{
		LowStock: []business.LowStockAlert{{Name: "Helado Vainilla", Stock: 2, Needed: 8}},
	}
	got, ok := l.Respond("como anda el inventario", snap)
	if !ok {
		t.Fatal("inventory keyword did not match")
	}
	if !strings.Contains(got, "stock bajo") {
		t.Fatalf("low stock hint missing: %q", got)
	}
}

func TestStaticAlwaysResponds(t *testing.T) {
	s := NewStatic()
	for _, in := range []string{"", "xyzzy", "cuestion rara", "stock", "venta", "producto"} {
		if got := s.Respond(in); got == "" {
			t.Errorf("Respond(%q) returned empty", in)
		}
	}
	if len(s.Suggestions()) == 0 {
		t.Fatal("static tier offers no suggestions")
	}
}

func TestStaticTopicRouting(t *testing.T) {
	s := NewStatic()
	if got := s.Respond("problema con el stock"); !strings.Contains(got, "inventario") {
		t.Fatalf("stock topic not routed: %q", got)
	}
	if got := s.Respond("duda sobre una venta"); !strings.Contains(got, "Ventas") {
		t.Fatalf("sales topic not routed: %q", got)
	}
	if got := s.Respond("sin tema claro"); !strings.Contains(got, "ayuda") {
		t.Fatalf("generic fallback missing help pointer: %q", got)
	}
}
