package superbot

import (
	"fmt"
	"strings"

	"veneziabot/internal/business"
	"veneziabot/internal/intent"
)

func (b *Bot) executeAnalytics(in intent.Intent, tc Context) (Result, error) {
	switch in.Command {
	case intent.CmdBusinessHealth:
		return businessHealth(tc.Snapshot), nil
	case intent.CmdProfitAnalysis:
		return profitAnalysis(tc.Snapshot), nil
	case intent.CmdPerformanceMetrics:
		return performanceMetrics(tc.Snapshot), nil
	case intent.CmdForecast:
		return forecast(tc.Snapshot), nil
	default:
		return Result{}, fmt.Errorf("unknown analytics command %q", in.Command)
	}
}

// dailySalesTarget is the reference daily revenue for a full sales score.
const dailySalesTarget = 50000

// healthScore computes a 0-100 score from three weighted components: sales
// against the daily target (40), inventory alerts (30) and catalog diversity
// (30). Returns the score plus per-component indicator lines and
// recommendations.
func healthScore(snap business.Snapshot) (int, []string, []string) {
	var indicators, recs []string

	// Sales: 40 points at or above target, proportional below.
	sales := snap.SalesToday.Total * 40 / dailySalesTarget
	if sales > 40 {
		sales = 40
	}
	switch {
	case sales >= 30:
		indicators = append(indicators, "🟢 Ventas: excelente ritmo hoy")
	case sales >= 15:
		indicators = append(indicators, "🟡 Ventas: por debajo del objetivo")
		recs = append(recs, "Impulsa ventas con promociones del día")
	default:
		indicators = append(indicators, "🔴 Ventas: muy bajas hoy")
		recs = append(recs, "Revisa precios y promociona los sabores más vendidos")
	}

	// Inventory: start from 30, lose points per product in alert.
	inventory := 30
	total := snap.TotalProducts()
	if total > 0 {
		inventory = 30 - len(snap.LowStock)*30/total
		if inventory < 0 {
			inventory = 0
		}
	}
	switch {
	case len(snap.LowStock) == 0:
		indicators = append(indicators, "🟢 Inventario: sin alertas de stock")
	case inventory >= 15:
		indicators = append(indicators, fmt.Sprintf("🟡 Inventario: %d producto(s) con stock bajo", len(snap.LowStock)))
		recs = append(recs, "Repone los productos con stock bajo")
	default:
		indicators = append(indicators, fmt.Sprintf("🔴 Inventario: %d producto(s) en alerta", len(snap.LowStock)))
		recs = append(recs, "Genera un pedido urgente de reposición")
	}

	// Diversity: 30 points at 10+ active products, 3 per product below that.
	diversity := total * 3
	if diversity > 30 {
		diversity = 30
	}
	if diversity >= 21 {
		indicators = append(indicators, fmt.Sprintf("🟢 Catálogo: %d productos activos", total))
	} else {
		indicators = append(indicators, fmt.Sprintf("🟡 Catálogo: solo %d productos activos", total))
		recs = append(recs, "Agrega nuevos sabores para diversificar la oferta")
	}

	return sales + inventory + diversity, indicators, recs
}

func businessHealth(snap business.Snapshot) Result {
	score, indicators, recs := healthScore(snap)

	label := "🔴 Crítico"
	switch {
	case score >= 80:
		label = "🟢 Excelente"
	case score >= 60:
		label = "🟡 Bueno"
	case score >= 40:
		label = "🟠 Regular"
	}

	msg := fmt.Sprintf(
		"🏥 **Salud del negocio: %d/100** %s\n\n%s",
		score, label, strings.Join(indicators, "\n"))
	if len(recs) > 0 {
		msg += fmt.Sprintf("\n\n💡 **Recomendaciones:**\n• %s", strings.Join(recs, "\n• "))
	}

	return Result{
		Success:     true,
		Message:     msg,
		Suggestions: []string{"Ver ventas del día", "Ver stock bajo"},
		Data:        map[string]any{"healthScore": score},
	}
}

func profitAnalysis(snap business.Snapshot) Result {
	total := snap.SalesToday.Total
	// Rough margin estimate for artisan ice cream; real costing lives in the
	// production module.
	estCost := total * 35 / 100
	estProfit := total - estCost

	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"💰 **Análisis de rentabilidad (hoy)**\n\n• Ingresos: $%d\n• Costo estimado (35%%): $%d\n• Ganancia estimada: $%d\n\nPara el margen real por sabor ve a Producción → Costos.",
			total, estCost, estProfit),
		Suggestions: []string{"Ver costo por receta", "Ver productos más vendidos"},
		Data:        map[string]any{"revenue": total, "estimatedProfit": estProfit},
	}
}

func performanceMetrics(snap business.Snapshot) Result {
	tx := snap.SalesToday.Transactions
	avg := 0
	if tx > 0 {
		avg = snap.SalesToday.Total / tx
	}
	score, _, _ := healthScore(snap)

	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"📊 **KPIs del negocio**\n\n• Ventas hoy: $%d\n• Transacciones: %d\n• Ticket promedio: $%d\n• Productos activos: %d\n• Alertas de stock: %d\n• Salud general: %d/100",
			snap.SalesToday.Total, tx, avg, snap.TotalProducts(), len(snap.LowStock), score),
		Suggestions: []string{"Ver salud del negocio", "Ver tendencias"},
		Data: map[string]any{
			"todaySales":   snap.SalesToday.Total,
			"transactions": tx,
			"avgTicket":    avg,
			"healthScore":  score,
		},
	}
}

func forecast(snap business.Snapshot) Result {
	projected := snap.SalesToday.Total * 7
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"🔮 **Proyección de ventas**\n\n• Si mantienes el ritmo de hoy: ~$%d esta semana\n\nPara una proyección con histórico real ve a Reportes → Proyecciones.",
			projected),
		Suggestions: []string{"Ver tendencias", "Ver reporte semanal"},
		Data:        map[string]any{"weeklyProjection": projected},
	}
}
