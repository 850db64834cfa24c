// Package superbot implements the deterministic rule-based tier: it composes
// the intent matcher, parameter extraction, product resolution and the
// confirmation gate into domain command handlers for inventory, sales,
// production, emergency, analytics and compound operations.
package superbot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"veneziabot/internal/business"
	"veneziabot/internal/catalog"
	"veneziabot/internal/intent"
	"veneziabot/internal/pending"
)

// Result is the outcome of one rule-based turn.
type Result struct {
	Success           bool
	Message           string
	Suggestions       []string
	NeedsConfirmation bool
	PendingActionID   string
	ActionExecuted    bool
	Data              map[string]any
}

// Context carries the per-turn collaborators supplied by the host.
type Context struct {
	Snapshot business.Snapshot
	Executor business.ActionExecutor
}

// Bot is the rule-based command tier. Safe for concurrent use; per-turn
// state lives in the arguments, shared state (resolver memo, gate) is locked
// internally.
type Bot struct {
	matcher  *intent.Matcher
	resolver *catalog.Resolver
	gate     *pending.Gate
	log      *zap.Logger
}

// New builds the bot around a shared resolver and confirmation gate.
func New(resolver *catalog.Resolver, gate *pending.Gate, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		matcher:  intent.NewMatcher(),
		resolver: resolver,
		gate:     gate,
		log:      log,
	}
}

// Matcher exposes the shared intent matcher for the orchestrator's
// is-this-a-command check.
func (b *Bot) Matcher() *intent.Matcher { return b.matcher }

// Process matches the normalized message and either executes it, or — for
// commands on the destructive allow-list — parks it behind a confirmation
// prompt. An unmatched or malformed message returns an error wrapping
// business.ErrAmbiguousIntent.
func (b *Bot) Process(ctx context.Context, normalized string, tc Context) (Result, error) {
	in, err := b.matcher.Match(normalized)
	if err != nil {
		return Result{}, err
	}
	b.log.Debug("rule tier matched",
		zap.String("category", string(in.Category)),
		zap.String("command", string(in.Command)),
		zap.Float64("confidence", in.Confidence))

	if pending.Destructive(in.Command) {
		return b.requestConfirmation(in), nil
	}
	return b.Execute(ctx, in, tc)
}

// Execute runs an already-parsed intent. Also the entry point for confirmed
// pending actions.
func (b *Bot) Execute(ctx context.Context, in intent.Intent, tc Context) (Result, error) {
	switch in.Category {
	case intent.CategoryInventory:
		return b.executeInventory(ctx, in, tc)
	case intent.CategorySales:
		return b.executeSales(ctx, in, tc)
	case intent.CategoryProduction:
		return b.executeProduction(in, tc)
	case intent.CategoryEmergency:
		return b.executeEmergency(in, tc)
	case intent.CategoryAnalytics:
		return b.executeAnalytics(in, tc)
	case intent.CategoryCompound:
		return b.executeCompound(ctx, in, tc)
	case intent.CategoryGeneral:
		return b.executeGeneral(in, tc)
	default:
		return Result{}, fmt.Errorf("unknown category %q", in.Category)
	}
}

func (b *Bot) requestConfirmation(in intent.Intent) Result {
	summary := Summary(in)
	a := b.gate.Register(in, summary)
	b.log.Info("pending confirmation registered",
		zap.String("id", a.ID),
		zap.String("command", string(in.Command)))
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"⚠️ **Confirmar acción**\n\n🎯 **Acción:** %s\n\n¿Estás seguro de que quieres realizar esta acción?",
			summary),
		NeedsConfirmation: true,
		PendingActionID:   a.ID,
		Suggestions:       []string{"✅ Sí, ejecutar", "❌ Cancelar"},
	}
}

func productNotFound(name string) Result {
	return Result{
		Success: false,
		Message: fmt.Sprintf("❌ **Producto no encontrado**\n\nNo encontré un producto llamado \"%s\" en el inventario.", name),
		Suggestions: []string{
			fmt.Sprintf("Crear helado %s $4500", name),
			"Ver todos los productos",
		},
	}
}
