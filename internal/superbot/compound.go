package superbot

import (
	"context"
	"fmt"
	"strings"

	"veneziabot/internal/intent"
)

func (b *Bot) executeCompound(ctx context.Context, in intent.Intent, tc Context) (Result, error) {
	switch in.Command {
	case intent.CmdStockAndPrice:
		return b.stockAndPrice(ctx, in.Params, tc), nil
	case intent.CmdCreateAndStock:
		return b.createAndStock(ctx, in.Params, tc), nil
	case intent.CmdMultipleOps:
		return multipleOperations(in.Params), nil
	case intent.CmdBatchUpdate:
		return batchUpdate(in.Params), nil
	default:
		return Result{}, fmt.Errorf("unknown compound command %q", in.Command)
	}
}

// stockAndPrice runs the two legs in order and reports per-leg outcomes; a
// failed first leg does not stop the second.
func (b *Bot) stockAndPrice(ctx context.Context, p intent.Params, tc Context) Result {
	stockRes := b.addStock(ctx, p, tc)
	priceRes := b.updatePrice(ctx, p, tc)

	ok := stockRes.Success && priceRes.Success
	header := "✅ **Operación combinada completada**"
	if !ok {
		header = "⚠️ **Operación combinada con errores**"
	}
	return Result{
		Success: ok,
		Message: fmt.Sprintf(
			"%s\n\n**1. Stock**\n%s\n\n**2. Precio**\n%s",
			header, indent(stockRes.Message), indent(priceRes.Message)),
		ActionExecuted: stockRes.ActionExecuted || priceRes.ActionExecuted,
		Suggestions:    []string{"Ver stock actualizado", "Ver inventario"},
		Data: map[string]any{
			"stockOK": stockRes.Success,
			"priceOK": priceRes.Success,
		},
	}
}

// createAndStock creates the product and seeds its initial stock in a single
// executor call; createProduct already passes Quantity as initialStock.
func (b *Bot) createAndStock(ctx context.Context, p intent.Params, tc Context) Result {
	res := b.createProduct(ctx, p, tc)
	if !res.Success {
		return res
	}
	res.Message += fmt.Sprintf("\n\n📦 Stock inicial cargado: %d unidades", p.Quantity)
	return res
}

func multipleOperations(p intent.Params) Result {
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"📋 **Varias operaciones detectadas**\n\nRecibí: \"%s\"\n\nPor seguridad ejecuto una operación a la vez. Envíame cada una por separado, por ejemplo:\n• \"agregar 10 kg de chocolate\"\n• \"cambiar precio de vainilla a $4500\"",
			strings.TrimSpace(p.Rest)),
		Suggestions: []string{"Ver comandos disponibles", "Empezar por la primera"},
	}
}

func batchUpdate(p intent.Params) Result {
	if p.Percent > 0 {
		return Result{
			Success: true,
			Message: fmt.Sprintf(
				"📦 **Aumento masivo del %d%%**\n\n1. Ve a Productos → Herramientas\n2. Selecciona \"Actualización masiva de precios\"\n3. Aplica +%d%% y revisa la vista previa antes de confirmar",
				p.Percent, p.Percent),
			Suggestions: []string{"Ir a productos", "Ver precios actuales"},
		}
	}
	return Result{
		Success:     true,
		Message:     "📦 **Actualización masiva**\n\nDime el porcentaje, por ejemplo: \"subir todos los precios un 10%\".",
		Suggestions: []string{"Subir precios 10%", "Ver productos"},
	}
}

func indent(s string) string {
	return "> " + strings.ReplaceAll(s, "\n", "\n> ")
}
