// Package fallback holds the two bottom tiers of the cascade: a local
// keyword responder that needs no network, and the static guided responder
// that always produces something useful.
package fallback

import (
	"strings"

	"veneziabot/internal/business"
)

// keywordGroup maps trigger words (in normalized space) to a canned reply.
type keywordGroup struct {
	keywords []string
	respond  func(snap business.Snapshot) string
}

var keywordGroups = []keywordGroup{
	{
		keywords: []string{"hola", "buenas", "buenos dias", "buenas tardes"},
		respond: func(business.Snapshot) string {
			return "¡Hola! 👋 Soy el asistente de la heladería.\n\nPuedo ayudarte con inventario, ventas y producción. Escribe \"ayuda\" para ver ejemplos."
		},
	},
	{
		keywords: []string{"gracias", "genial", "perfecto"},
		respond: func(business.Snapshot) string {
			return "¡De nada! 😊 ¿Necesitas algo más?"
		},
	},
	{
		keywords: []string{"venta", "ventas", "vendimos", "facturacion"},
		respond: func(snap business.Snapshot) string {
			if snap.SalesToday.Transactions > 0 {
				return "📈 Hoy llevas ventas registradas. Escribe \"ventas de hoy\" para el detalle completo."
			}
			return "📈 Para ver tus ventas escribe \"ventas de hoy\" o ve a Reportes → Ventas."
		},
	},
	{
		keywords: []string{"stock", "inventario", "existencias"},
		respond: func(snap business.Snapshot) string {
			if len(snap.LowStock) > 0 {
				return "📦 Tienes productos con stock bajo. Escribe \"productos con stock bajo\" para verlos."
			}
			return "📦 Pregúntame por un producto, por ejemplo: \"cuánto stock hay de chocolate\"."
		},
	},
	{
		keywords: []string{"producto", "helado", "sabor", "sabores"},
		respond: func(business.Snapshot) string {
			return "🍦 Puedo crear productos o consultar el catálogo. Prueba: \"crear helado pistacho $4500\" o \"cuánto stock hay de vainilla\"."
		},
	},
	{
		keywords: []string{"precio", "precios", "cuesta"},
		respond: func(business.Snapshot) string {
			return "💰 Para cambiar un precio escribe, por ejemplo: \"cambiar precio de fresa a $4200\"."
		},
	},
	{
		keywords: []string{"ayuda", "help", "comandos", "que puedes hacer"},
		respond: func(business.Snapshot) string {
			return "🤖 Puedo ayudarte con:\n• Inventario: \"agregar 10 kg de chocolate\"\n• Ventas: \"ventas de hoy\"\n• Producción: \"hacer 2 lotes de vainilla\"\n• Análisis: \"cómo está el negocio\""
		},
	},
}

// Local is the offline keyword responder (tier 2). It never errors; Respond
// reports ok=false when no keyword group matches and the cascade should fall
// through to the static tier.
type Local struct{}

// NewLocal returns the keyword responder.
func NewLocal() *Local { return &Local{} }

// Respond matches the normalized message against the keyword groups,
// first group wins.
func (l *Local) Respond(normalized string, snap business.Snapshot) (string, bool) {
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(normalized, kw) {
				return g.respond(snap), true
			}
		}
	}
	return "", false
}
