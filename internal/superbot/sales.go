package superbot

import (
	"context"
	"fmt"
	"strings"

	"veneziabot/internal/business"
	"veneziabot/internal/intent"
)

func (b *Bot) executeSales(ctx context.Context, in intent.Intent, tc Context) (Result, error) {
	switch in.Command {
	case intent.CmdDailySales:
		return dailySales(tc.Snapshot), nil
	case intent.CmdBestSellers:
		return bestSellers(tc.Snapshot), nil
	case intent.CmdWeeklySales:
		return periodReport("semanal", "Últimos 7 días"), nil
	case intent.CmdMonthlySales:
		return periodReport("mensual", "Este mes"), nil
	case intent.CmdRegisterSale:
		return b.registerSale(ctx, in.Params, tc), nil
	case intent.CmdSalesTrends:
		return salesTrends(tc.Snapshot), nil
	case intent.CmdComparePeriods:
		return comparePeriods(), nil
	default:
		return Result{}, fmt.Errorf("unknown sales command %q", in.Command)
	}
}

func dailySales(snap business.Snapshot) Result {
	total := snap.SalesToday.Total
	tx := snap.SalesToday.Transactions
	avg := 0
	if tx > 0 {
		avg = total / tx
	}
	closing := "📊 Aún no hay ventas registradas hoy"
	if total > 0 {
		closing = "✅ ¡Buen trabajo!"
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"📈 **Ventas de hoy**\n\n💰 **Total:** $%d\n🛒 **Transacciones:** %d\n🎯 **Ticket promedio:** $%d\n\n%s",
			total, tx, avg, closing),
		Data:        map[string]any{"todaySales": total, "transactions": tx, "avgTicket": avg},
		Suggestions: []string{"Ver productos más vendidos", "Comparar con ayer"},
	}
}

func bestSellers(snap business.Snapshot) Result {
	ranking := snap.BestSellers
	if len(ranking) == 0 {
		ranking = snap.SalesToday.TopProducts
	}
	if len(ranking) == 0 {
		return Result{
			Success:     true,
			Message:     "🏆 **Productos más vendidos**\n\n📊 Todavía no hay ranking para mostrar.\nVe a Reportes → Productos para el histórico completo.",
			Suggestions: []string{"Ver reporte completo", "Analizar tendencias"},
		}
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var lines []string
	for i, s := range ranking {
		if i >= 5 {
			break
		}
		medal := "•"
		if i < len(medals) {
			medal = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s **%s**: %d unidades ($%d)", medal, s.Name, s.Units, s.Revenue))
	}
	return Result{
		Success:     true,
		Message:     fmt.Sprintf("🏆 **Productos más vendidos**\n\n%s", strings.Join(lines, "\n")),
		Data:        map[string]any{"ranking": ranking},
		Suggestions: []string{"Optimizar stock", "Ver reporte completo"},
	}
}

func periodReport(period, label string) Result {
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"📊 **Reporte %s**\n\n1. Ve a Reportes → Ventas\n2. Selecciona \"%s\"\n3. Analiza gráficos y métricas\n\n🎯 Incluye ingresos, productos y tendencias",
			period, label),
		Suggestions: []string{"Ver reporte detallado", "Exportar datos"},
	}
}

func (b *Bot) registerSale(ctx context.Context, p intent.Params, tc Context) Result {
	product := b.resolver.Resolve(p.Product, tc.Snapshot)
	if product == nil {
		return productNotFound(p.Product)
	}
	if tc.Executor == nil {
		return Result{
			Success: true,
			Message: fmt.Sprintf(
				"🛒 **Registrar venta**\n\n**Cantidad:** %d\n**Producto:** %s\n\n1. Ve a POS/Ventas\n2. Busca \"%s\" y selecciona cantidad %d\n3. Completa la venta",
				p.Quantity, product.Name, product.Name, p.Quantity),
			Suggestions: []string{"Ir a POS", "Ver productos"},
		}
	}
	res, err := tc.Executor.Execute(ctx, business.ActionRegisterSale, map[string]any{
		"productId": product.ID,
		"quantity":  p.Quantity,
	})
	if err != nil || !res.Success {
		return executionFailed("registrando venta", res, err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"✅ **Venta registrada**\n\n🛒 %d x %s por $%d",
			p.Quantity, product.Name, p.Quantity*product.Price),
		ActionExecuted: true,
		Data:           map[string]any{"product": product.Name, "quantity": p.Quantity},
	}
}

func salesTrends(snap business.Snapshot) Result {
	trend := "estable"
	if snap.SalesToday.Total > 0 {
		trend = "en crecimiento"
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"📈 **Tendencias de ventas**\n\n• Ventas de hoy: $%d (%d transacciones)\n• Tendencia actual: %s\n\nPara el análisis histórico ve a Reportes → Tendencias.",
			snap.SalesToday.Total, snap.SalesToday.Transactions, trend),
		Suggestions: []string{"Ver análisis completo", "Comparar períodos"},
	}
}

func comparePeriods() Result {
	return Result{
		Success:     true,
		Message:     "📊 **Comparación de períodos**\n\n1. Ve a Reportes → Ventas\n2. Activa \"Comparar con período anterior\"\n3. Revisa la variación por producto",
		Suggestions: []string{"Ver reporte detallado", "Analizar tendencias"},
	}
}
