// Package gemini implements the generative fallback tier against the Google
// Generative Language REST API. It is deliberately thin: build a grounded
// prompt, call generateContent, post-process the reply for executable
// micro-actions. All failures surface as errors wrapping
// business.ErrTierUnavailable so the engine can keep cascading.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"veneziabot/internal/business"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"

	availabilityTTL = time.Hour
)

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	Contents          []GeminiContent        `json:"contents"`
	SystemInstruction *GeminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  GeminiGenerationConfig `json:"generationConfig"`
	SafetySettings    []GeminiSafetySetting  `json:"safetySettings,omitempty"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type GeminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// GeminiResponse is the subset of the generateContent response we read.
type GeminiResponse struct {
	Candidates []struct {
		Content      GeminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// safetySettings disables API-side blocking; the assistant only ever talks
// about ice cream inventory.
var safetySettings = []GeminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// Config holds the client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        *zap.Logger

	// Availability probe result, memoized for availabilityTTL.
	mu        sync.Mutex
	available bool
	lastProbe time.Time
	now       func() time.Time
}

// NewClient builds a client. An empty API key yields a client that reports
// itself unavailable and fails every call.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
		now:        time.Now,
	}
}

// Available reports whether the generative tier is worth attempting. The
// probe result is memoized for an hour; a missing key is always unavailable.
func (c *Client) Available(ctx context.Context) bool {
	if c.apiKey == "" {
		return false
	}

	c.mu.Lock()
	if !c.lastProbe.IsZero() && c.now().Sub(c.lastProbe) < availabilityTTL {
		ok := c.available
		c.mu.Unlock()
		return ok
	}
	c.mu.Unlock()

	ok := c.probe(ctx)

	c.mu.Lock()
	c.available = ok
	c.lastProbe = c.now()
	c.mu.Unlock()
	return ok
}

// probe issues a minimal request; only auth failures mark the tier down,
// transient errors leave it available so real calls can retry.
func (c *Client) probe(ctx context.Context) bool {
	body, err := json.Marshal(GeminiRequest{
		Contents:         []GeminiContent{{Role: "user", Parts: []GeminiPart{{Text: "ping"}}}},
		GenerationConfig: GeminiGenerationConfig{Temperature: 0, MaxOutputTokens: 1, TopP: 1, TopK: 1},
	})
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("gemini probe failed", zap.Error(err))
		return true
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.log.Warn("gemini api key rejected", zap.Int("status", resp.StatusCode))
		return false
	}
	return true
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
}

// Generate sends the conversation to Gemini and returns the reply text.
func (c *Client) Generate(ctx context.Context, systemPrompt string, history []Turn, message string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: gemini api key not configured", business.ErrTierUnavailable)
	}

	contents := make([]GeminiContent, 0, len(history)+1)
	for _, t := range history {
		role := "user"
		if !t.FromUser {
			role = "model"
		}
		contents = append(contents, GeminiContent{Role: role, Parts: []GeminiPart{{Text: t.Text}}})
	}
	contents = append(contents, GeminiContent{Role: "user", Parts: []GeminiPart{{Text: message}}})

	reqBody := GeminiRequest{
		Contents: contents,
		SystemInstruction: &GeminiContent{
			Parts: []GeminiPart{{Text: systemPrompt}},
		},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 800,
			TopP:            0.95,
			TopK:            40,
		},
		SafetySettings: safetySettings,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", business.ErrTierUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", business.ErrTierUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", business.ErrTierUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", business.ErrTierUnavailable, err)
	}

	c.log.Debug("gemini generate",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", c.now().Sub(start)))

	var parsed GeminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", business.ErrTierUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			c.markUnavailable()
		}
		return "", fmt.Errorf("%w: api status %d: %s", business.ErrTierUnavailable, resp.StatusCode, msg)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate", business.ErrTierUnavailable)
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", business.ErrTierUnavailable)
	}
	return text, nil
}

func (c *Client) markUnavailable() {
	c.mu.Lock()
	c.available = false
	c.lastProbe = c.now()
	c.mu.Unlock()
}

// SetClock overrides the time source for tests.
func (c *Client) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Turn is one prior conversation exchange half, oldest first.
type Turn struct {
	FromUser bool
	Text     string
}
