package engine

import "veneziabot/internal/business"

// suggestionsFor fills in follow-up chips when a tier returned none: stock
// alerts first, then a time-of-day default.
func suggestionsFor(snap business.Snapshot, hour int) []string {
	var out []string
	if len(snap.LowStock) > 0 {
		out = append(out, "Productos con stock bajo")
	}
	switch {
	case hour < 12:
		out = append(out, "¿Cuánto vendimos ayer?", "Ver stock para hoy")
	case hour < 19:
		out = append(out, "Ventas de hoy", "Productos más vendidos")
	default:
		out = append(out, "Balance del día", "Hacer lote para mañana")
	}
	return out
}
