package superbot

import (
	"fmt"
	"strings"

	"veneziabot/internal/business"
	"veneziabot/internal/intent"
)

func (b *Bot) executeEmergency(in intent.Intent, tc Context) (Result, error) {
	switch in.Command {
	case intent.CmdCriticalStock:
		return criticalStock(tc.Snapshot), nil
	case intent.CmdBusinessEmergency:
		return businessEmergency(tc.Snapshot), nil
	case intent.CmdUrgentRestock:
		return urgentRestock(tc.Snapshot), nil
	default:
		return Result{}, fmt.Errorf("unknown emergency command %q", in.Command)
	}
}

// criticalStock reports products at or below 2 units, a stricter cut than the
// regular low-stock alert.
func criticalStock(snap business.Snapshot) Result {
	var critical []business.Product
	for _, p := range snap.Products {
		if p.Active && p.Stock <= 2 {
			critical = append(critical, p)
		}
	}
	if len(critical) == 0 {
		return Result{
			Success:     true,
			Message:     "✅ **Sin emergencias de stock**\n\nNingún producto está en nivel crítico (2 unidades o menos).",
			Suggestions: []string{"Ver stock bajo", "Ver inventario"},
		}
	}

	var lines []string
	for _, p := range critical {
		lines = append(lines, fmt.Sprintf("• **%s**: %d unidades 🚨", p.Name, p.Stock))
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"🚨 **STOCK CRÍTICO**\n\n%s\n\n⚡ Estos productos pueden agotarse hoy. Repone de inmediato.",
			strings.Join(lines, "\n")),
		Suggestions: []string{"Reponer urgente", "Contactar proveedores"},
		Data:        map[string]any{"criticalCount": len(critical)},
	}
}

func businessEmergency(snap business.Snapshot) Result {
	score, indicators, _ := healthScore(snap)
	if score >= 60 {
		return Result{
			Success: true,
			Message: fmt.Sprintf(
				"✅ **Sin emergencias detectadas**\n\nSalud del negocio: %d/100\n\n%s",
				score, strings.Join(indicators, "\n")),
			Suggestions: []string{"Ver salud del negocio", "Ver ventas"},
		}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"🚨 **Atención: el negocio necesita acción**\n\nSalud del negocio: %d/100\n\n%s\n\n⚡ Revisa los puntos en rojo primero.",
			score, strings.Join(indicators, "\n")),
		Suggestions: []string{"Ver stock crítico", "Ver ventas del día", "Ver recomendaciones"},
		Data:        map[string]any{"healthScore": score},
	}
}

func urgentRestock(snap business.Snapshot) Result {
	if len(snap.LowStock) == 0 {
		return Result{
			Success:     true,
			Message:     "✅ **Nada que reponer con urgencia**\n\nTodos los productos están sobre su mínimo.",
			Suggestions: []string{"Ver inventario", "Ver ventas"},
		}
	}

	var lines []string
	total := 0
	for _, a := range snap.LowStock {
		lines = append(lines, fmt.Sprintf("• %s: pedir %d unidades", a.Name, a.Needed))
		total += a.Needed
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"🛒 **Pedido urgente sugerido**\n\n%s\n\n📦 **Total a pedir:** %d unidades\n\n1. Ve a Inventario → Pedidos\n2. Crea el pedido con estas cantidades\n3. Marca como urgente",
			strings.Join(lines, "\n"), total),
		Suggestions: []string{"Ver proveedores", "Ajustar cantidades"},
		Data:        map[string]any{"totalUnits": total, "products": len(snap.LowStock)},
	}
}
