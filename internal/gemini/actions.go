package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"veneziabot/internal/business"
	"veneziabot/internal/catalog"
	"veneziabot/internal/nlp"
)

// Micro-action patterns recognized inside a model reply. These are a
// deliberately tiny subset of the rule tier: simple, unambiguous mutations
// the model proposes in free-form text. Evaluated against the normalized
// reply.
var (
	actAddStock = regexp.MustCompile(`agregar (\d+) (?:kg|unidades|litros|gramos)? ?(?:de |al stock de )?([a-z ]+)`)
	actCreate   = regexp.MustCompile(`crear (?:helado|producto) (?:de )?([a-z ]+?) (?:a |en )?\$(\d+)`)
	actPrice    = regexp.MustCompile(`(?:cambiar|poner) precio (?:de |del helado de )?([a-z ]+?) a \$(\d+)`)
)

// ActionRunner executes the micro-actions detected in a generative turn.
type ActionRunner struct {
	resolver *catalog.Resolver
	norm     *nlp.Normalizer
	log      *zap.Logger
}

// NewActionRunner builds a runner sharing the engine's product resolver.
func NewActionRunner(resolver *catalog.Resolver, log *zap.Logger) *ActionRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActionRunner{resolver: resolver, norm: nlp.NewNormalizer(), log: log}
}

// Apply scans the model reply for a micro-action the model proposed,
// executes it best-effort, and appends a confirmation banner to the reply.
// Any failure leaves the reply untouched; the generative answer still stands
// on its own.
func (r *ActionRunner) Apply(ctx context.Context, reply string, snap business.Snapshot, exec business.ActionExecutor) (string, bool) {
	if exec == nil {
		return reply, false
	}
	normalized := r.norm.Normalize(reply)

	if m := actAddStock.FindStringSubmatch(normalized); m != nil {
		qty, _ := strconv.Atoi(m[1])
		product := r.resolver.Resolve(m[2], snap)
		if product == nil || qty <= 0 {
			return reply, false
		}
		res, err := exec.Execute(ctx, business.ActionAddStock, map[string]any{
			"productId": product.ID,
			"quantity":  qty,
		})
		if err != nil || !res.Success {
			r.log.Debug("generative micro-action failed", zap.Error(err))
			return reply, false
		}
		banner := fmt.Sprintf("🚀 **ACCIÓN EJECUTADA:** agregué %d unidades al stock de %s", qty, product.Name)
		return reply + "\n\n" + banner, true
	}

	if m := actCreate.FindStringSubmatch(normalized); m != nil {
		price, _ := strconv.Atoi(m[2])
		res, err := exec.Execute(ctx, business.ActionCreateProduct, map[string]any{
			"name":     m[1],
			"price":    price,
			"category": "Helado",
		})
		if err != nil || !res.Success {
			r.log.Debug("generative micro-action failed", zap.Error(err))
			return reply, false
		}
		banner := fmt.Sprintf("🚀 **ACCIÓN EJECUTADA:** creé el producto %s a $%d", m[1], price)
		return reply + "\n\n" + banner, true
	}

	if m := actPrice.FindStringSubmatch(normalized); m != nil {
		price, _ := strconv.Atoi(m[2])
		product := r.resolver.Resolve(m[1], snap)
		if product == nil || price <= 0 {
			return reply, false
		}
		res, err := exec.Execute(ctx, business.ActionUpdatePrice, map[string]any{
			"productId": product.ID,
			"newPrice":  price,
		})
		if err != nil || !res.Success {
			r.log.Debug("generative micro-action failed", zap.Error(err))
			return reply, false
		}
		banner := fmt.Sprintf("🚀 **ACCIÓN EJECUTADA:** cambié el precio de %s a $%d", product.Name, price)
		return reply + "\n\n" + banner, true
	}

	return reply, false
}
