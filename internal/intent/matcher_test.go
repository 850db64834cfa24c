package intent

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"veneziabot/internal/business"
)

func TestMatchCanonicalCommands(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		in      string
		command Command
		params  Params
	}{
		{
			in:      "agregar 10 kg de chocolate",
			command: CmdAddStock,
			params:  Params{Quantity: 10, Product: "chocolate", Unit: UnitKg},
		},
		{
			in:      "cuanto stock queda de chocolate",
			command: CmdCheckStock,
			params:  Params{Product: "chocolate", Unit: UnitUnits},
		},
		{
			in:      "productos con stock bajo",
			command: CmdLowStock,
			params:  Params{Unit: UnitUnits},
		},
		{
			in:      "crear helado pistacho $4500",
			command: CmdCreateProduct,
			params:  Params{Name: "pistacho", Price: 4500, Unit: UnitUnits},
		},
		{
			in:      "cambiar precio de vainilla a $4800",
			command: CmdUpdatePrice,
			params:  Params{Product: "vainilla", Price: 4800, Unit: UnitUnits},
		},
		{
			in:      "cambiar precio del helado de vainilla a $4800",
			command: CmdUpdatePrice,
			params:  Params{Product: "helado de vainilla", Price: 4800, Unit: UnitUnits},
		},
		{
			in:      "ventas de hoy",
			command: CmdDailySales,
			params:  Params{Unit: UnitUnits},
		},
		{
			in:      "productos mas vendidos",
			command: CmdBestSellers,
			params:  Params{Unit: UnitUnits},
		},
		{
			in:      "vender 3 chocolate",
			command: CmdRegisterSale,
			params:  Params{Quantity: 3, Product: "chocolate", Unit: UnitUnits},
		},
		{
			in:      "hacer 2 lotes de chocolate",
			command: CmdMakeBatch,
			params:  Params{Quantity: 2, Product: "chocolate", Unit: UnitUnits},
		},
		{
			in:      "salud del negocio",
			command: CmdBusinessHealth,
			params:  Params{Unit: UnitUnits},
		},
		{
			in:      "subir todos los precios en 10%",
			command: CmdBulkOperations,
			params:  Params{Percent: 10, Unit: UnitUnits},
		},
		{
			in:      "ayuda",
			command: CmdHelp,
			params:  Params{Unit: UnitUnits},
		},
		{
			in:      "agregar 10 kg de chocolate y cambiar precio a $5000",
			command: CmdStockAndPrice,
			params:  Params{Quantity: 10, Product: "chocolate", Price: 5000, Unit: UnitKg},
		},
		{
			in:      "crear pistacho $4500 con 20 unidades",
			command: CmdCreateAndStock,
			params:  Params{Name: "pistacho", Price: 4500, Quantity: 20, Unit: UnitUnits},
		},
	}

	for _, tc := range cases {
		in, err := m.Match(tc.in)
		if err != nil {
			t.Errorf("Match(%q): unexpected error %v", tc.in, err)
			continue
		}
		if in.Command != tc.command {
			t.Errorf("Match(%q) command = %s, want %s", tc.in, in.Command, tc.command)
			continue
		}
		if diff := cmp.Diff(tc.params, in.Params); diff != "" {
			t.Errorf("Match(%q) params mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestMatchMissWrapsAmbiguousIntent(t *testing.T) {
	m := NewMatcher()
	_, err := m.Match("me gusta el helado un monton")
	if err == nil {
		t.Fatal("expected error for non-command text")
	}
	if !errors.Is(err, business.ErrAmbiguousIntent) {
		t.Fatalf("error %v does not wrap ErrAmbiguousIntent", err)
	}
}

func TestMatchEmptyProductFails(t *testing.T) {
	m := NewMatcher()
	_, err := m.Match("verificar")
	if err == nil {
		t.Fatal("expected error for command without product")
	}
	if !errors.Is(err, business.ErrAmbiguousIntent) {
		t.Fatalf("error %v does not wrap ErrAmbiguousIntent", err)
	}
}

func TestIsCommandAgreesWithMatch(t *testing.T) {
	m := NewMatcher()
	for _, s := range []string{"agregar 5 unidades de fresa", "ventas de hoy", "ayuda"} {
		if !m.IsCommand(s) {
			t.Errorf("IsCommand(%q) = false, want true", s)
		}
	}
	if m.IsCommand("gracias por todo") {
		t.Error("IsCommand matched small talk")
	}
}

func TestConfidenceBounds(t *testing.T) {
	m := NewMatcher()
	in, err := m.Match("ayuda")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if in.Confidence <= 0 || in.Confidence > 0.9 {
		t.Fatalf("confidence %v out of (0, 0.9]", in.Confidence)
	}
}

func TestMatchFirstPatternWins(t *testing.T) {
	m := NewMatcher()
	// The compound form must win over plain add_stock even though both
	// structurally match.
	in, err := m.Match("agregar 10 kg de chocolate y cambiar precio a $5000")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if in.Category != CategoryCompound {
		t.Fatalf("category = %s, want compound", in.Category)
	}
}
