package fallback

import "strings"

// Static is the last tier: guided responses that always succeed. It points
// the user at the screens and commands that cover the topic it can guess
// from the message, or at general help when it cannot.
type Static struct{}

// NewStatic returns the guided responder.
func NewStatic() *Static { return &Static{} }

// Suggestions are the follow-ups offered with every static response.
func (s *Static) Suggestions() []string {
	return []string{"Ver ayuda", "Ventas de hoy", "Productos con stock bajo"}
}

// Respond never fails.
func (s *Static) Respond(normalized string) string {
	switch {
	case strings.Contains(normalized, "stock") || strings.Contains(normalized, "inventario"):
		return "📦 **Gestión de inventario**\n\n" +
			"1. Ve a Inventario → Productos para ver el stock actual\n" +
			"2. Usa \"Editar\" para ajustar cantidades\n\n" +
			"También puedes decirme: \"agregar 10 kg de chocolate\" o \"cuánto stock hay de vainilla\"."
	case strings.Contains(normalized, "venta") || strings.Contains(normalized, "vendi"):
		return "📈 **Ventas**\n\n" +
			"1. Ve a Reportes → Ventas para el detalle del día\n" +
			"2. Filtra por período para comparar\n\n" +
			"También puedes decirme: \"ventas de hoy\" o \"productos más vendidos\"."
	case strings.Contains(normalized, "producto") || strings.Contains(normalized, "helado"):
		return "🍦 **Productos**\n\n" +
			"1. Ve a Productos para el catálogo completo\n" +
			"2. \"+ Nuevo Producto\" para crear sabores\n\n" +
			"También puedes decirme: \"crear helado pistacho $4500\"."
	default:
		return "🤖 No entendí tu mensaje, pero puedo ayudarte con:\n\n" +
			"• **Inventario**: \"agregar 10 kg de chocolate\"\n" +
			"• **Ventas**: \"ventas de hoy\"\n" +
			"• **Producción**: \"hacer 2 lotes de vainilla\"\n" +
			"• **Análisis**: \"cómo está el negocio\"\n\n" +
			"Escribe \"ayuda\" para ver todos los comandos."
	}
}
