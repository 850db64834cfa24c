package superbot

import (
	"fmt"
	"strings"

	"veneziabot/internal/intent"
)

// Summary renders the human-readable one-liner shown in confirmation
// prompts and stored with the pending action.
func Summary(in intent.Intent) string {
	p := in.Params
	switch in.Command {
	case intent.CmdAddStock:
		return fmt.Sprintf("Agregar %d %s de %s", p.Quantity, p.Unit, p.Product)
	case intent.CmdCreateProduct:
		return fmt.Sprintf("Crear producto \"%s\" a $%d", p.Name, p.Price)
	case intent.CmdUpdatePrice:
		return fmt.Sprintf("Cambiar precio de \"%s\" a $%d", p.Product, p.Price)
	case intent.CmdStockAndPrice:
		return fmt.Sprintf("Agregar %d %s de %s y cambiar precio a $%d", p.Quantity, p.Unit, p.Product, p.Price)
	case intent.CmdCreateAndStock:
		return fmt.Sprintf("Crear producto \"%s\" a $%d con %d unidades iniciales", p.Name, p.Price, p.Quantity)
	default:
		return fmt.Sprintf("Ejecutar %s", in.Command)
	}
}

// title uppercases the first letter of a product name for display, matching
// how the catalog capitalizes new entries.
func title(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
