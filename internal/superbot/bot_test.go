package superbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"veneziabot/internal/business"
	"veneziabot/internal/catalog"
	"veneziabot/internal/pending"
)

type fakeExecutor struct {
	calls []struct {
		action business.ActionName
		params map[string]any
	}
	fail bool
}

func (f *fakeExecutor) Execute(ctx context.Context, action business.ActionName, params map[string]any) (business.ActionResult, error) {
	f.calls = append(f.calls, struct {
		action business.ActionName
		params map[string]any
	}{action, params})
	if f.fail {
		return business.ActionResult{Success: false, Message: "backend down"}, nil
	}
	return business.ActionResult{Success: true, Message: "ok"}, nil
}

func testSnapshot() business.Snapshot {
	return business.Snapshot{
		Products: []business.Product{
			{ID: 1, Name: "Helado Chocolate", Stock: 25, MinimumStock: 10, Price: 4500, Category: "Helado", Active: true},
			{ID: 2, Name: "Helado Vainilla", Stock: 8, MinimumStock: 10, Price: 4200, Category: "Helado", Active: true},
		},
		SalesToday: business.DailySales{Total: 38500, Transactions: 9},
		LowStock: []business.LowStockAlert{
			{Name: "Helado Vainilla", Stock: 8, Needed: 2},
		},
	}
}

func newTestBot() (*Bot, *pending.Gate) {
	gate := pending.NewGate(5*time.Minute, 10)
	return New(catalog.NewResolver(0, 0), gate, nil), gate
}

func TestAddStockRequiresConfirmation(t *testing.T) {
	bot, gate := newTestBot()
	exec := &fakeExecutor{}
	tc := Context{Snapshot: testSnapshot(), Executor: exec}

	res, err := bot.Process(context.Background(), "agregar 10 kg de chocolate", tc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !res.NeedsConfirmation || res.PendingActionID == "" {
		t.Fatalf("expected confirmation request, got %+v", res)
	}
	if !strings.Contains(res.Message, "Agregar 10 kg de chocolate") {
		t.Fatalf("summary missing from prompt: %q", res.Message)
	}
	if len(exec.calls) != 0 {
		t.Fatal("destructive command executed before confirmation")
	}

	a, err := gate.Take(res.PendingActionID)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	confirmed, err := bot.Execute(context.Background(), a.Intent, tc)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !confirmed.Success || !confirmed.ActionExecuted {
		t.Fatalf("confirmed execution failed: %+v", confirmed)
	}
	if !strings.Contains(confirmed.Message, "Stock anterior: 25") || !strings.Contains(confirmed.Message, "Stock actual: 35") {
		t.Fatalf("stock math missing: %q", confirmed.Message)
	}

	if len(exec.calls) != 1 || exec.calls[0].action != business.ActionAddStock {
		t.Fatalf("executor calls = %+v", exec.calls)
	}
	params := exec.calls[0].params
	if params["productId"] != 1 || params["quantity"] != 10 {
		t.Fatalf("executor params = %+v", params)
	}
}

func TestCheckStockEmbedsLiteralStock(t *testing.T) {
	bot, _ := newTestBot()
	tc := Context{Snapshot: testSnapshot()}

	res, err := bot.Process(context.Background(), "cuanto stock queda de chocolate", tc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.NeedsConfirmation {
		t.Fatal("read-only query asked for confirmation")
	}
	if !strings.Contains(res.Message, "25") {
		t.Fatalf("stock value missing: %q", res.Message)
	}
}

func TestCheckStockLowAlert(t *testing.T) {
	bot, _ := newTestBot()
	tc := Context{Snapshot: testSnapshot()}

	res, err := bot.Process(context.Background(), "cuanto stock queda de vainilla", tc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(res.Message, "Stock bajo") {
		t.Fatalf("low stock alert missing: %q", res.Message)
	}
}

func TestProductNotFound(t *testing.T) {
	bot, _ := newTestBot()
	tc := Context{Snapshot: testSnapshot()}

	res, err := bot.Process(context.Background(), "cuanto stock queda de pistacho", tc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Success {
		t.Fatal("unknown product reported success")
	}
	if !strings.Contains(res.Message, "pistacho") {
		t.Fatalf("product name missing from error: %q", res.Message)
	}
}

func TestNilExecutorGivesManualInstructions(t *testing.T) {
	bot, gate := newTestBot()
	tc := Context{Snapshot: testSnapshot()}

	res, err := bot.Process(context.Background(), "agregar 5 unidades de chocolate", tc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	a, err := gate.Take(res.PendingActionID)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	manual, err := bot.Execute(context.Background(), a.Intent, tc)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !manual.Success || manual.ActionExecuted {
		t.Fatalf("manual path should succeed without executing: %+v", manual)
	}
	if !strings.Contains(manual.Message, "Instrucciones") {
		t.Fatalf("manual instructions missing: %q", manual.Message)
	}
}

func TestExecutorFailureIsReported(t *testing.T) {
	bot, gate := newTestBot()
	exec := &fakeExecutor{fail: true}
	tc := Context{Snapshot: testSnapshot(), Executor: exec}

	res, _ := bot.Process(context.Background(), "agregar 10 kg de chocolate", tc)
	a, err := gate.Take(res.PendingActionID)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	failed, err := bot.Execute(context.Background(), a.Intent, tc)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if failed.Success {
		t.Fatal("executor failure reported as success")
	}
	if !strings.Contains(failed.Message, "backend down") {
		t.Fatalf("backend detail missing: %q", failed.Message)
	}
}

func TestUnmatchedMessageReturnsAmbiguous(t *testing.T) {
	bot, _ := newTestBot()
	_, err := bot.Process(context.Background(), "me encanta el helado", Context{Snapshot: testSnapshot()})
	if !errors.Is(err, business.ErrAmbiguousIntent) {
		t.Fatalf("err = %v, want ErrAmbiguousIntent", err)
	}
}

func TestDailySales(t *testing.T) {
	bot, _ := newTestBot()
	res, err := bot.Process(context.Background(), "ventas de hoy", Context{Snapshot: testSnapshot()})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for _, want := range []string{"$38500", "9", fmt.Sprintf("$%d", 38500/9)} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("daily sales missing %q: %q", want, res.Message)
		}
	}
}

func TestBusinessHealthScoreBounds(t *testing.T) {
	bot, _ := newTestBot()
	res, err := bot.Process(context.Background(), "salud del negocio", Context{Snapshot: testSnapshot()})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	score, ok := res.Data["healthScore"].(int)
	if !ok {
		t.Fatalf("healthScore missing from data: %+v", res.Data)
	}
	if score < 0 || score > 100 {
		t.Fatalf("score %d out of [0,100]", score)
	}
}

func TestHealthScoreEmptyBusiness(t *testing.T) {
	score, _, recs := healthScore(business.Snapshot{})
	if score < 0 || score > 100 {
		t.Fatalf("score %d out of [0,100]", score)
	}
	if len(recs) == 0 {
		t.Fatal("empty business produced no recommendations")
	}
}

func TestCompoundStockAndPrice(t *testing.T) {
	bot, gate := newTestBot()
	exec := &fakeExecutor{}
	tc := Context{Snapshot: testSnapshot(), Executor: exec}

	res, err := bot.Process(context.Background(), "agregar 10 kg de chocolate y cambiar precio a $5000", tc)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !res.NeedsConfirmation {
		t.Fatal("compound mutation skipped confirmation")
	}

	a, err := gate.Take(res.PendingActionID)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	done, err := bot.Execute(context.Background(), a.Intent, tc)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !done.Success {
		t.Fatalf("compound execution failed: %+v", done)
	}
	if len(exec.calls) != 2 {
		t.Fatalf("expected 2 executor calls, got %d", len(exec.calls))
	}
	if exec.calls[0].action != business.ActionAddStock || exec.calls[1].action != business.ActionUpdatePrice {
		t.Fatalf("call order = %+v", exec.calls)
	}
}

func TestCriticalStockThreshold(t *testing.T) {
	bot, _ := newTestBot()
	snap := testSnapshot()
	snap.Products = append(snap.Products, business.Product{ID: 3, Name: "Helado Menta", Stock: 1, Price: 4000, Active: true})

	res, err := bot.Process(context.Background(), "que se esta agotando", Context{Snapshot: snap})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(res.Message, "Helado Menta") {
		t.Fatalf("critical product missing: %q", res.Message)
	}
	if strings.Contains(res.Message, "Helado Chocolate") {
		t.Fatalf("non-critical product listed: %q", res.Message)
	}
}

func TestHelpListsCommandFamilies(t *testing.T) {
	bot, _ := newTestBot()
	res, err := bot.Process(context.Background(), "ayuda", Context{Snapshot: testSnapshot()})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for _, want := range []string{"Inventario", "Ventas", "Producción"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
