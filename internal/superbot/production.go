package superbot

import (
	"fmt"
	"strings"

	"veneziabot/internal/business"
	"veneziabot/internal/intent"
)

func (b *Bot) executeProduction(in intent.Intent, tc Context) (Result, error) {
	switch in.Command {
	case intent.CmdMakeBatch:
		return makeBatch(in.Params, tc.Snapshot), nil
	case intent.CmdAvailableRecipes:
		return availableRecipes(tc.Snapshot), nil
	case intent.CmdRecipeCost:
		return recipeCost(in.Params), nil
	default:
		return Result{}, fmt.Errorf("unknown production command %q", in.Command)
	}
}

func makeBatch(p intent.Params, snap business.Snapshot) Result {
	qty := p.Quantity
	if qty == 0 {
		qty = 1
	}
	flavor := title(p.Product)
	if flavor == "" {
		flavor = "Helado"
	}

	var missing []string
	for _, ing := range snap.Ingredients {
		if ing.Quantity < ing.Minimum {
			missing = append(missing, fmt.Sprintf("• %s: %.1f %s (mínimo %.1f)", ing.Name, ing.Quantity, ing.Unit, ing.Minimum))
		}
	}
	if len(missing) > 0 {
		return Result{
			Success: true,
			Message: fmt.Sprintf(
				"⚠️ **Ingredientes insuficientes para %d lote(s) de %s**\n\n%s\n\n🛒 Repone los ingredientes antes de producir.",
				qty, flavor, strings.Join(missing, "\n")),
			Suggestions: []string{"Ver ingredientes", "Hacer pedido a proveedores"},
			Data:        map[string]any{"missingIngredients": len(missing)},
		}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"🏭 **Orden de producción**\n\n🍦 **Producto:** %s\n📦 **Lotes:** %d\n\n1. Ve a Producción → Nueva orden\n2. Selecciona la receta de %s\n3. Confirma cantidad y programa el lote",
			flavor, qty, flavor),
		Suggestions: []string{"Ver recetas", "Ver ingredientes disponibles"},
		Data:        map[string]any{"flavor": flavor, "batches": qty},
	}
}

func availableRecipes(snap business.Snapshot) Result {
	if len(snap.Ingredients) == 0 {
		return Result{
			Success:     true,
			Message:     "🍦 **Recetas disponibles**\n\nNo hay datos de ingredientes cargados.\nVe a Producción → Recetas para ver el catálogo completo.",
			Suggestions: []string{"Ver recetas", "Cargar ingredientes"},
		}
	}

	ok := 0
	for _, ing := range snap.Ingredients {
		if ing.Quantity >= ing.Minimum {
			ok++
		}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"🍦 **Recetas disponibles**\n\n• Ingredientes en stock: %d de %d\n• Con los ingredientes actuales puedes producir los sabores de base\n\nVe a Producción → Recetas para el detalle por sabor.",
			ok, len(snap.Ingredients)),
		Suggestions: []string{"Hacer lote", "Ver ingredientes"},
		Data:        map[string]any{"ingredientsOK": ok, "ingredientsTotal": len(snap.Ingredients)},
	}
}

func recipeCost(p intent.Params) Result {
	flavor := title(p.Product)
	if flavor == "" {
		flavor = "cada sabor"
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"💰 **Costo de producción de %s**\n\n1. Ve a Producción → Recetas\n2. Abre la receta y revisa \"Costo por lote\"\n3. Compara contra el precio de venta para ver el margen",
			flavor),
		Suggestions: []string{"Ver análisis de rentabilidad", "Ver recetas"},
	}
}
