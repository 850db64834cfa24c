// Package engine is the orchestrator: it routes each message through the
// four-tier cascade (rule bot, generative, local keywords, static guidance),
// owns the response cache, the daily quota and the confirmation flow, and
// guarantees that ProcessMessage always returns a response, never panics.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"veneziabot/internal/business"
	"veneziabot/internal/cache"
	"veneziabot/internal/catalog"
	"veneziabot/internal/fallback"
	"veneziabot/internal/gemini"
	"veneziabot/internal/nlp"
	"veneziabot/internal/pending"
	"veneziabot/internal/quota"
	"veneziabot/internal/superbot"
)

// Response sources, ordered by fallback level.
const (
	SourceSuperbot = "superbot" // level 4: deterministic rule bot
	SourceGemini   = "gemini"   // level 3: generative
	SourceMock     = "mock"     // level 2: local keywords
	SourceFallback = "fallback" // level 1: static guidance
	SourceError    = "error"    // level 0: total failure
)

// Response is the uniform outcome of one turn.
type Response struct {
	Message           string         `json:"message"`
	Source            string         `json:"source"`
	FallbackLevel     int            `json:"fallback_level"`
	Success           bool           `json:"success"`
	CanExecuteActions bool           `json:"can_execute_actions"`
	Suggestions       []string       `json:"suggestions,omitempty"`
	NeedsConfirmation bool           `json:"needs_confirmation,omitempty"`
	PendingActionID   string         `json:"pending_action_id,omitempty"`
	ActionExecuted    bool           `json:"action_executed,omitempty"`
	Cached            bool           `json:"cached,omitempty"`
	Data              map[string]any `json:"data,omitempty"`
}

// GenerativeTier abstracts the Gemini client so tests can fake outages and
// slow responses.
type GenerativeTier interface {
	Available(ctx context.Context) bool
	Generate(ctx context.Context, systemPrompt string, history []gemini.Turn, message string) (string, error)
}

// Options configures an Engine.
type Options struct {
	CacheSize    int
	CacheTTL     time.Duration
	HistoryLimit int
	// TierFingerprint keys cached entries to the active generative
	// configuration so a model change invalidates them.
	TierFingerprint string
	PendingTTL      time.Duration
	PendingCapacity int
	QuotaStore      quota.Store
	DailyQuota      int
}

// Engine wires the tiers together. Safe for concurrent use.
type Engine struct {
	normalizer *nlp.Normalizer
	bot        *superbot.Bot
	gate       *pending.Gate
	generative GenerativeTier
	actions    *gemini.ActionRunner
	local      *fallback.Local
	static     *fallback.Static
	cache      *cache.ResponseCache
	quota      *quota.Tracker
	provider   business.DataProvider
	executor   business.ActionExecutor
	log        *zap.Logger

	group       singleflight.Group
	fingerprint string

	sessMu       sync.Mutex
	sessions     map[string]*session
	historyLimit int
}

// New builds an engine. provider is required; generative and executor may be
// nil, degrading those tiers gracefully.
func New(provider business.DataProvider, executor business.ActionExecutor, generative GenerativeTier, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	resolver := catalog.NewResolver(0, 0)
	gate := pending.NewGate(opts.PendingTTL, opts.PendingCapacity)
	return &Engine{
		normalizer:   nlp.NewNormalizer(),
		bot:          superbot.New(resolver, gate, log.Named("superbot")),
		gate:         gate,
		generative:   generative,
		actions:      gemini.NewActionRunner(resolver, log.Named("actions")),
		local:        fallback.NewLocal(),
		static:       fallback.NewStatic(),
		cache:        cache.New(opts.CacheSize, opts.CacheTTL),
		quota:        quota.NewTracker(opts.QuotaStore, opts.DailyQuota),
		provider:     provider,
		executor:     executor,
		log:          log,
		fingerprint:  opts.TierFingerprint,
		sessions:     make(map[string]*session),
		historyLimit: opts.HistoryLimit,
	}
}

// Gate exposes the confirmation gate, for hosts that manage sweeping.
func (e *Engine) Gate() *pending.Gate { return e.gate }

// Cache exposes the response cache for stats and maintenance.
func (e *Engine) Cache() *cache.ResponseCache { return e.cache }

// Quota exposes the generative quota tracker.
func (e *Engine) Quota() *quota.Tracker { return e.quota }

// ProcessMessage routes one user message through the cascade. It never
// panics and never returns an error: total failure yields a level-0
// response with Source "error".
func (e *Engine) ProcessMessage(ctx context.Context, sessionID, message string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("process message panicked", zap.Any("panic", r))
			resp = errorResponse()
		}
	}()

	normalized := e.normalizer.Normalize(message)
	sess := e.session(sessionID)
	gen := sess.begin()

	snap, err := e.snapshot(ctx)
	if err != nil {
		e.log.Warn("data provider failed, continuing with empty snapshot", zap.Error(err))
	}

	key := e.cacheKey(normalized, sess)
	if v, ok := e.cache.Get(key); ok {
		cached := v.(Response)
		cached.Cached = true
		e.record(sess, message, cached.Message)
		return cached
	}

	resp = e.cascade(ctx, normalized, message, snap, sess, gen, key)
	if len(resp.Suggestions) == 0 {
		resp.Suggestions = suggestionsFor(snap, time.Now().Hour())
	}
	e.record(sess, message, resp.Message)

	if resp.Success && !resp.NeedsConfirmation && !resp.ActionExecuted && resp.FallbackLevel >= 2 {
		e.cache.Set(key, resp)
	}
	return resp
}

func (e *Engine) cascade(ctx context.Context, normalized, message string, snap business.Snapshot, sess *session, gen uint64, key string) Response {
	tc := superbot.Context{Snapshot: snap, Executor: e.executor}

	// Tier 4: deterministic rule bot.
	if e.bot.Matcher().IsCommand(normalized) {
		res, err := e.bot.Process(ctx, normalized, tc)
		if err == nil {
			return fromBotResult(res)
		}
		if !errors.Is(err, business.ErrAmbiguousIntent) {
			e.log.Warn("rule tier failed", zap.Error(err))
		}
	}

	// Tier 3: generative, metered and deduplicated.
	if e.generative != nil && e.generative.Available(ctx) {
		if reply, ok := e.generate(ctx, normalized, message, snap, sess, gen, key); ok {
			executed := false
			if e.actions != nil {
				reply, executed = e.actions.Apply(ctx, reply, snap, e.executor)
			}
			return Response{
				Message:           reply,
				Source:            SourceGemini,
				FallbackLevel:     3,
				Success:           true,
				CanExecuteActions: true,
				ActionExecuted:    executed,
			}
		}
	}

	// Tier 2: local keyword responder.
	if reply, ok := e.local.Respond(normalized, snap); ok {
		return Response{
			Message:       reply,
			Source:        SourceMock,
			FallbackLevel: 2,
			Success:       true,
		}
	}

	// Tier 1: static guidance, always succeeds, never cached.
	return Response{
		Message:       e.static.Respond(normalized),
		Source:        SourceFallback,
		FallbackLevel: 1,
		Success:       true,
		Suggestions:   e.static.Suggestions(),
	}
}

// generate runs the metered generative call under singleflight so identical
// concurrent turns share one API call and one quota slot. A result whose
// session has already moved on is discarded.
func (e *Engine) generate(ctx context.Context, normalized, message string, snap business.Snapshot, sess *session, gen uint64, key string) (string, bool) {
	v, err, _ := e.group.Do(key, func() (any, error) {
		if !e.quota.Reserve() {
			return nil, fmt.Errorf("%w: daily quota exhausted", business.ErrTierUnavailable)
		}
		system := gemini.BuildSystemPrompt(snap)
		reply, gerr := e.generative.Generate(ctx, system, turns(sess.tail(contextWindow)), message)
		if gerr != nil {
			// Only successful calls count against the day.
			e.quota.Release()
			return nil, gerr
		}
		return reply, nil
	})
	if err != nil {
		e.log.Info("generative tier unavailable", zap.Error(err))
		return "", false
	}
	if !sess.current(gen) {
		e.log.Debug("discarding stale generative result")
		return "", false
	}
	return v.(string), true
}

// ConfirmAction executes a pending destructive action exactly once.
func (e *Engine) ConfirmAction(ctx context.Context, id string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("confirm action panicked", zap.Any("panic", r))
			resp = errorResponse()
		}
	}()

	a, err := e.gate.Take(id)
	if err != nil {
		return pendingError(err)
	}

	snap, perr := e.snapshot(ctx)
	if perr != nil {
		e.log.Warn("data provider failed during confirm", zap.Error(perr))
	}
	res, err := e.bot.Execute(ctx, a.Intent, superbot.Context{Snapshot: snap, Executor: e.executor})
	if err != nil {
		e.log.Error("confirmed action failed", zap.String("id", id), zap.Error(err))
		return errorResponse()
	}
	out := fromBotResult(res)
	if out.Success {
		out.Message = "✅ **Acción confirmada y ejecutada**\n\n" + out.Message
	}
	return out
}

// CancelAction discards a pending action.
func (e *Engine) CancelAction(id string) Response {
	if _, err := e.gate.Take(id); err != nil {
		return pendingError(err)
	}
	return Response{
		Message:       "❌ **Acción cancelada**\n\nNo se realizó ningún cambio.",
		Source:        SourceSuperbot,
		FallbackLevel: 4,
		Success:       true,
		Suggestions:   []string{"Ver comandos", "Ventas de hoy"},
	}
}

// Status summarizes engine health for the host's diagnostics surface.
type Status struct {
	CacheStats      cache.Stats `json:"cache_stats"`
	QuotaUsed       int         `json:"quota_used"`
	QuotaLimit      int         `json:"quota_limit"`
	PendingActions  int         `json:"pending_actions"`
	GenerativeReady bool        `json:"generative_ready"`
}

// CurrentStatus reports cache, quota and pending-action counters.
func (e *Engine) CurrentStatus(ctx context.Context) Status {
	ready := false
	if e.generative != nil {
		ready = e.generative.Available(ctx)
	}
	return Status{
		CacheStats:      e.cache.Stats(),
		QuotaUsed:       e.quota.Count(),
		QuotaLimit:      e.quota.Limit(),
		PendingActions:  e.gate.Count(),
		GenerativeReady: ready,
	}
}

func (e *Engine) snapshot(ctx context.Context) (business.Snapshot, error) {
	if e.provider == nil {
		return business.Snapshot{}, nil
	}
	return e.provider.Snapshot(ctx)
}

func (e *Engine) cacheKey(normalized string, sess *session) string {
	tailMsgs := sess.tail(contextWindow)
	texts := make([]string, len(tailMsgs))
	for i, m := range tailMsgs {
		texts[i] = m.Text
	}
	return cache.Key(normalized, texts, e.fingerprint)
}

func (e *Engine) record(sess *session, userMsg, reply string) {
	now := time.Now()
	sess.append(newMessage(true, userMsg, now))
	sess.append(newMessage(false, reply, now))
}

func turns(msgs []Message) []gemini.Turn {
	out := make([]gemini.Turn, len(msgs))
	for i, m := range msgs {
		out[i] = gemini.Turn{FromUser: m.FromUser, Text: m.Text}
	}
	return out
}

func fromBotResult(res superbot.Result) Response {
	return Response{
		Message:           res.Message,
		Source:            SourceSuperbot,
		FallbackLevel:     4,
		Success:           res.Success,
		CanExecuteActions: true,
		Suggestions:       res.Suggestions,
		NeedsConfirmation: res.NeedsConfirmation,
		PendingActionID:   res.PendingActionID,
		ActionExecuted:    res.ActionExecuted,
		Data:              res.Data,
	}
}

func pendingError(err error) Response {
	msg := "❌ **No encontré esa acción pendiente**\n\nPuede que ya se haya ejecutado o cancelado."
	if errors.Is(err, business.ErrPendingActionExpired) {
		msg = "⏰ **La confirmación expiró**\n\nPor seguridad la acción se descartó. Vuelve a pedirla si todavía la necesitas."
	}
	return Response{
		Message:       msg,
		Source:        SourceSuperbot,
		FallbackLevel: 4,
		Success:       false,
		Suggestions:   []string{"Repetir el comando", "Ver ayuda"},
	}
}

func errorResponse() Response {
	return Response{
		Message:       "❌ Ocurrió un error inesperado procesando tu mensaje. Intenta de nuevo en unos segundos.",
		Source:        SourceError,
		FallbackLevel: 0,
		Success:       false,
		Suggestions:   []string{"Intentar de nuevo", "Ver ayuda"},
	}
}
