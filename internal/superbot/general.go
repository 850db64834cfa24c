package superbot

import (
	"fmt"
	"strings"

	"veneziabot/internal/business"
	"veneziabot/internal/intent"
)

func (b *Bot) executeGeneral(in intent.Intent, tc Context) (Result, error) {
	switch in.Command {
	case intent.CmdHelp:
		return helpResult(), nil
	case intent.CmdStatus:
		return statusReport(tc.Snapshot), nil
	case intent.CmdConfiguration:
		return configurationHelp(), nil
	case intent.CmdLearning:
		return learningHelp(), nil
	default:
		return Result{}, fmt.Errorf("unknown general command %q", in.Command)
	}
}

func helpResult() Result {
	return Result{
		Success: true,
		Message: "🤖 **Comandos disponibles**\n\n" +
			"📦 **Inventario**\n" +
			"• \"agregar 10 kg de chocolate\"\n" +
			"• \"cuánto stock hay de vainilla\"\n" +
			"• \"productos con stock bajo\"\n" +
			"• \"crear helado pistacho $4500\"\n" +
			"• \"cambiar precio de fresa a $4200\"\n\n" +
			"📈 **Ventas**\n" +
			"• \"ventas de hoy\"\n" +
			"• \"productos más vendidos\"\n\n" +
			"🏭 **Producción**\n" +
			"• \"hacer 2 lotes de chocolate\"\n\n" +
			"📊 **Análisis**\n" +
			"• \"cómo está el negocio\"\n" +
			"• \"stock crítico\"",
		Suggestions: []string{"Ventas de hoy", "Stock bajo", "Cómo está el negocio"},
	}
}

// statusReport is the executive summary: health score plus the day's key
// numbers in one message.
func statusReport(snap business.Snapshot) Result {
	score, indicators, _ := healthScore(snap)
	tx := snap.SalesToday.Transactions
	avg := 0
	if tx > 0 {
		avg = snap.SalesToday.Total / tx
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"📋 **Resumen ejecutivo**\n\n🏥 Salud del negocio: **%d/100**\n\n%s\n\n"+
				"💰 Ventas hoy: $%d (%d transacciones, ticket $%d)\n"+
				"📦 Productos activos: %d | Alertas de stock: %d",
			score, strings.Join(indicators, "\n"),
			snap.SalesToday.Total, tx, avg,
			snap.TotalProducts(), len(snap.LowStock)),
		Suggestions: []string{"Ver salud completa", "Ver stock bajo", "Ver ventas"},
		Data:        map[string]any{"healthScore": score},
	}
}

func configurationHelp() Result {
	return Result{
		Success: true,
		Message: "⚙️ **Configuración**\n\n" +
			"1. Ve a Ajustes → General para datos del negocio\n" +
			"2. Ajustes → Inventario para mínimos de stock\n" +
			"3. Ajustes → Usuarios para permisos del equipo",
		Suggestions: []string{"Ver ayuda", "Ver estado del negocio"},
	}
}

func learningHelp() Result {
	return Result{
		Success: true,
		Message: "🎓 **Aprende a usar el asistente**\n\n" +
			"Escribe órdenes en lenguaje natural, por ejemplo:\n" +
			"• \"agregar 10 kg de chocolate\"\n" +
			"• \"ventas de hoy\"\n\n" +
			"Las acciones que modifican datos siempre piden confirmación antes de ejecutarse.",
		Suggestions: []string{"Ver todos los comandos", "Probar: ventas de hoy"},
	}
}
