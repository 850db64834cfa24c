package gemini

import (
	"fmt"
	"strings"

	"veneziabot/internal/business"
)

// BuildSystemPrompt grounds the model in the current business state so
// answers quote real numbers instead of inventing them.
func BuildSystemPrompt(snap business.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("Eres el asistente virtual de la Heladería Venezia, una heladería artesanal.\n")
	sb.WriteString("Responde SIEMPRE en español, de forma breve y accionable, usando los datos reales de abajo.\n")
	sb.WriteString("Si el usuario pide una acción (agregar stock, crear producto, cambiar precio), ")
	sb.WriteString("indícale el comando exacto, por ejemplo: \"agregar 10 kg de chocolate\".\n\n")

	sb.WriteString("== DATOS ACTUALES DEL NEGOCIO ==\n")
	fmt.Fprintf(&sb, "Ventas de hoy: $%d en %d transacciones\n",
		snap.SalesToday.Total, snap.SalesToday.Transactions)
	fmt.Fprintf(&sb, "Productos activos: %d\n", snap.TotalProducts())

	if len(snap.Products) > 0 {
		sb.WriteString("\nInventario:\n")
		for _, p := range snap.Products {
			if !p.Active {
				continue
			}
			fmt.Fprintf(&sb, "- %s: %d unidades, $%d\n", p.Name, p.Stock, p.Price)
		}
	}

	if len(snap.LowStock) > 0 {
		sb.WriteString("\nAlertas de stock bajo:\n")
		for _, a := range snap.LowStock {
			fmt.Fprintf(&sb, "- %s: %d unidades (faltan %d)\n", a.Name, a.Stock, a.Needed)
		}
	}

	if len(snap.BestSellers) > 0 {
		sb.WriteString("\nMás vendidos:\n")
		for _, s := range snap.BestSellers {
			fmt.Fprintf(&sb, "- %s: %d unidades ($%d)\n", s.Name, s.Units, s.Revenue)
		}
	}

	sb.WriteString("\nNo inventes productos ni cifras que no estén en estos datos.")
	return sb.String()
}
