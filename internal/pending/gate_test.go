package pending

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"veneziabot/internal/business"
	"veneziabot/internal/intent"
)

func addStockIntent() intent.Intent {
	return intent.Intent{
		Category: intent.CategoryInventory,
		Command:  intent.CmdAddStock,
		Params:   intent.Params{Quantity: 10, Product: "chocolate", Unit: intent.UnitKg},
	}
}

func TestDestructiveAllowList(t *testing.T) {
	for _, cmd := range []intent.Command{
		intent.CmdAddStock, intent.CmdCreateProduct, intent.CmdUpdatePrice,
		intent.CmdStockAndPrice, intent.CmdCreateAndStock,
	} {
		if !Destructive(cmd) {
			t.Errorf("Destructive(%s) = false", cmd)
		}
	}
	for _, cmd := range []intent.Command{intent.CmdCheckStock, intent.CmdDailySales, intent.CmdHelp} {
		if Destructive(cmd) {
			t.Errorf("Destructive(%s) = true for read-only command", cmd)
		}
	}
}

func TestRegisterAndTake(t *testing.T) {
	g := NewGate(0, 0)
	a := g.Register(addStockIntent(), "Agregar 10 kg de chocolate")
	if a.ID == "" || a.Summary == "" {
		t.Fatalf("incomplete action: %+v", a)
	}
	if g.Count() != 1 {
		t.Fatalf("count = %d, want 1", g.Count())
	}

	got, err := g.Take(a.ID)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got.Intent.Command != intent.CmdAddStock {
		t.Fatalf("wrong intent: %+v", got.Intent)
	}
	if g.Count() != 0 {
		t.Fatal("action not removed after Take")
	}
}

func TestTakeIsExactlyOnce(t *testing.T) {
	g := NewGate(0, 0)
	a := g.Register(addStockIntent(), "x")

	if _, err := g.Take(a.ID); err != nil {
		t.Fatalf("first Take: %v", err)
	}
	_, err := g.Take(a.ID)
	if !errors.Is(err, business.ErrPendingActionNotFound) {
		t.Fatalf("second Take error = %v, want ErrPendingActionNotFound", err)
	}
}

func TestTakeUnknownID(t *testing.T) {
	g := NewGate(0, 0)
	if _, err := g.Take("nope"); !errors.Is(err, business.ErrPendingActionNotFound) {
		t.Fatalf("err = %v, want ErrPendingActionNotFound", err)
	}
}

func TestExpiry(t *testing.T) {
	g := NewGate(5*time.Minute, 0)
	now := time.Unix(1000, 0)
	g.SetClock(func() time.Time { return now })

	a := g.Register(addStockIntent(), "x")
	now = now.Add(6 * time.Minute)

	_, err := g.Take(a.ID)
	if !errors.Is(err, business.ErrPendingActionExpired) {
		t.Fatalf("err = %v, want ErrPendingActionExpired", err)
	}
	// The expired id is gone for good.
	if _, err := g.Take(a.ID); !errors.Is(err, business.ErrPendingActionNotFound) {
		t.Fatalf("second take err = %v, want ErrPendingActionNotFound", err)
	}
}

func TestLazyExpiryOnCount(t *testing.T) {
	g := NewGate(time.Minute, 0)
	now := time.Unix(1000, 0)
	g.SetClock(func() time.Time { return now })

	g.Register(addStockIntent(), "x")
	g.Register(addStockIntent(), "y")
	now = now.Add(2 * time.Minute)
	if got := g.Count(); got != 0 {
		t.Fatalf("count = %d, want 0 after expiry", got)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	g := NewGate(time.Hour, 2)
	a1 := g.Register(addStockIntent(), "1")
	g.Register(addStockIntent(), "2")
	g.Register(addStockIntent(), "3")

	if g.Count() != 2 {
		t.Fatalf("count = %d, want 2", g.Count())
	}
	if _, err := g.Take(a1.ID); !errors.Is(err, business.ErrPendingActionNotFound) {
		t.Fatalf("oldest action should have been evicted, err = %v", err)
	}
}

func TestSweeperStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGate(time.Minute, 0)
	g.StartSweeper(10 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	g.Stop()
}

func TestSweeperRemovesExpired(t *testing.T) {
	g := NewGate(time.Minute, 0)
	now := time.Unix(1000, 0)
	g.SetClock(func() time.Time { return now })

	g.Register(addStockIntent(), "x")
	now = now.Add(2 * time.Minute)

	g.StartSweeper(5 * time.Millisecond)
	defer g.Stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if g.Count() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("sweeper never removed the expired action")
}
