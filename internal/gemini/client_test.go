package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"veneziabot/internal/business"
)

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}}},
			},
		})
	}
}

func TestGenerate(t *testing.T) {
	var captured GeminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		replyWith("¡Hola! ¿En qué te ayudo?")(w, r)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	got, err := c.Generate(context.Background(), "sistema", []Turn{
		{FromUser: true, Text: "hola"},
		{FromUser: false, Text: "buenas"},
	}, "como va todo")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "¡Hola! ¿En qué te ayudo?" {
		t.Fatalf("reply = %q", got)
	}

	if len(captured.Contents) != 3 {
		t.Fatalf("contents = %d, want history plus message", len(captured.Contents))
	}
	if captured.Contents[1].Role != "model" {
		t.Fatalf("assistant turn role = %q", captured.Contents[1].Role)
	}
	gc := captured.GenerationConfig
	if gc.Temperature != 0.7 || gc.MaxOutputTokens != 800 || gc.TopP != 0.95 || gc.TopK != 40 {
		t.Fatalf("generation config = %+v", gc)
	}
	if len(captured.SafetySettings) != 4 {
		t.Fatalf("safety settings = %d, want 4", len(captured.SafetySettings))
	}
	if captured.SystemInstruction == nil || captured.SystemInstruction.Parts[0].Text != "sistema" {
		t.Fatal("system instruction missing")
	}
}

func TestGenerateAPIErrorWrapsTierUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota exceeded"},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	_, err := c.Generate(context.Background(), "s", nil, "hola")
	if !errors.Is(err, business.ErrTierUnavailable) {
		t.Fatalf("err = %v, want ErrTierUnavailable", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("api detail missing: %v", err)
	}
}

func TestGenerateWithoutKeyFailsFast(t *testing.T) {
	c := NewClient(Config{}, nil)
	if _, err := c.Generate(context.Background(), "s", nil, "hola"); !errors.Is(err, business.ErrTierUnavailable) {
		t.Fatalf("err = %v, want ErrTierUnavailable", err)
	}
	if c.Available(context.Background()) {
		t.Fatal("keyless client reported available")
	}
}

func TestAvailableMemoizesProbe(t *testing.T) {
	probes := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes++
		replyWith("ok")(w, r)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	now := time.Unix(1000, 0)
	c.SetClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		if !c.Available(context.Background()) {
			t.Fatal("expected available")
		}
	}
	if probes != 1 {
		t.Fatalf("probes = %d, want 1 (memoized)", probes)
	}

	now = now.Add(2 * time.Hour)
	c.Available(context.Background())
	if probes != 2 {
		t.Fatalf("probes = %d, want 2 after TTL", probes)
	}
}

func TestAuthFailureMarksUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 403, "message": "bad key"}})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "bad-key", BaseURL: srv.URL}, nil)
	if c.Available(context.Background()) {
		t.Fatal("rejected key reported available")
	}
}

func TestBuildSystemPromptGroundsData(t *testing.T) {
	snap := business.Snapshot{
		Products: []business.Product{
			{ID: 1, Name: "Helado Chocolate", Stock: 25, Price: 4500, Active: true},
			{ID: 2, Name: "Helado Inactivo", Stock: 5, Price: 4000, Active: false},
		},
		SalesToday: business.DailySales{Total: 38500, Transactions: 9},
		LowStock:   []business.LowStockAlert{{Name: "Helado Vainilla", Stock: 8, Needed: 2}},
	}
	prompt := BuildSystemPrompt(snap)

	for _, want := range []string{"Helado Chocolate", "$38500", "Helado Vainilla", "español"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Helado Inactivo") {
		t.Error("inactive product leaked into prompt")
	}
}
