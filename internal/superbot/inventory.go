package superbot

import (
	"context"
	"fmt"
	"strings"

	"veneziabot/internal/business"
	"veneziabot/internal/intent"
)

func (b *Bot) executeInventory(ctx context.Context, in intent.Intent, tc Context) (Result, error) {
	switch in.Command {
	case intent.CmdAddStock:
		return b.addStock(ctx, in.Params, tc), nil
	case intent.CmdCheckStock:
		return b.checkStock(in.Params, tc), nil
	case intent.CmdLowStock:
		return lowStock(tc.Snapshot), nil
	case intent.CmdCreateProduct:
		return b.createProduct(ctx, in.Params, tc), nil
	case intent.CmdUpdatePrice:
		return b.updatePrice(ctx, in.Params, tc), nil
	case intent.CmdBulkOperations:
		return bulkOperations(in.Params), nil
	case intent.CmdExpiryCheck:
		return expiryCheck(), nil
	default:
		return Result{}, fmt.Errorf("unknown inventory command %q", in.Command)
	}
}

func (b *Bot) addStock(ctx context.Context, p intent.Params, tc Context) Result {
	product := b.resolver.Resolve(p.Product, tc.Snapshot)
	if product == nil {
		return productNotFound(p.Product)
	}

	if tc.Executor == nil {
		return Result{
			Success: true,
			Message: fmt.Sprintf(
				"📦 **Instrucciones para agregar stock**\n\n**Producto:** %s\n**Cantidad:** %d %s\n\n1. Ve a Inventario → Productos\n2. Busca \"%s\" y haz clic en \"Editar\"\n3. Suma %d al stock actual y guarda",
				product.Name, p.Quantity, p.Unit, product.Name, p.Quantity),
			Suggestions: []string{"Ir a inventario", "Ver producto"},
		}
	}

	res, err := tc.Executor.Execute(ctx, business.ActionAddStock, map[string]any{
		"productId": product.ID,
		"quantity":  p.Quantity,
		"unit":      string(p.Unit),
	})
	if err != nil || !res.Success {
		return executionFailed("actualizando stock", res, err)
	}

	newStock := product.Stock + p.Quantity
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"✅ **Stock actualizado correctamente**\n\n📦 **%s**\n• Agregado: %d %s\n• Stock anterior: %d\n• Stock actual: %d",
			product.Name, p.Quantity, p.Unit, product.Stock, newStock),
		ActionExecuted: true,
		Data: map[string]any{
			"product":  product.Name,
			"added":    p.Quantity,
			"unit":     string(p.Unit),
			"newStock": newStock,
		},
	}
}

func (b *Bot) checkStock(p intent.Params, tc Context) Result {
	product := b.resolver.Resolve(p.Product, tc.Snapshot)
	if product == nil {
		return productNotFound(p.Product)
	}

	minimum := product.MinimumStock
	if minimum == 0 {
		minimum = 10
	}
	low := product.Stock <= minimum
	alert := "✅"
	if low {
		alert = "⚠️ **BAJO**"
	}

	msg := fmt.Sprintf(
		"📦 **Stock actual de %s**\n\n• **Cantidad:** %d unidades %s\n• **Precio:** $%d",
		product.Name, product.Stock, alert, product.Price)
	if low {
		msg += fmt.Sprintf("\n\n🚨 **Stock bajo** - Mínimo recomendado: %d", minimum)
	}

	suggestions := []string{"Ver otros productos", "Actualizar precio"}
	if low {
		suggestions = []string{fmt.Sprintf("Agregar stock de %s", product.Name), "Ver proveedores"}
	}
	return Result{
		Success:     true,
		Message:     msg,
		Suggestions: suggestions,
		Data: map[string]any{
			"product": product.Name,
			"stock":   product.Stock,
			"isLow":   low,
			"price":   product.Price,
		},
	}
}

func lowStock(snap business.Snapshot) Result {
	if len(snap.LowStock) == 0 {
		return Result{
			Success:     true,
			Message:     "✅ **¡Excelente!**\n\nTodos tus productos tienen stock suficiente.\n\n📦 No hay alertas de stock bajo en este momento.",
			Suggestions: []string{"Ver inventario completo", "Ver ventas del día"},
		}
	}

	var lines []string
	for _, a := range snap.LowStock {
		lines = append(lines, fmt.Sprintf("• **%s**: %d unidades (necesitas %d más)", a.Name, a.Stock, a.Needed))
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"⚠️ **Productos con stock bajo**\n\n%s\n\n📋 **Total de productos en alerta:** %d",
			strings.Join(lines, "\n"), len(snap.LowStock)),
		Suggestions: []string{"Generar pedido automático", "Ver proveedores"},
		Data:        map[string]any{"lowStock": snap.LowStock},
	}
}

func (b *Bot) createProduct(ctx context.Context, p intent.Params, tc Context) Result {
	name := fmt.Sprintf("Helado %s", title(p.Name))
	if tc.Executor == nil {
		return Result{
			Success: true,
			Message: fmt.Sprintf(
				"🍦 **Instrucciones para crear producto**\n\n**Nuevo helado:** %s\n**Precio:** $%d\n\n1. Ve a Productos → \"+ Nuevo Producto\"\n2. Nombre: \"%s\", precio %d, categoría Helado\n3. Guarda el producto",
				p.Name, p.Price, name, p.Price),
			Suggestions: []string{"Ir a productos", "Ver catálogo actual"},
		}
	}

	res, err := tc.Executor.Execute(ctx, business.ActionCreateProduct, map[string]any{
		"name":         name,
		"price":        p.Price,
		"category":     "Helado",
		"initialStock": p.Quantity,
	})
	if err != nil || !res.Success {
		return executionFailed("creando producto", res, err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"✅ **¡Nuevo producto creado!**\n\n🍦 **%s**\n• Precio: $%d\n• Stock inicial: %d unidades\n• Estado: Activo",
			name, p.Price, p.Quantity),
		ActionExecuted: true,
		Data:           map[string]any{"name": name, "price": p.Price},
		Suggestions:    []string{fmt.Sprintf("Agregar stock a %s", p.Name), "Ver todos los productos"},
	}
}

func (b *Bot) updatePrice(ctx context.Context, p intent.Params, tc Context) Result {
	product := b.resolver.Resolve(p.Product, tc.Snapshot)
	if product == nil {
		return productNotFound(p.Product)
	}

	if tc.Executor == nil {
		return Result{
			Success: true,
			Message: fmt.Sprintf(
				"💰 **Instrucciones para cambiar precio**\n\n**Producto:** %s\n**Precio actual:** $%d\n**Precio nuevo:** $%d\n\n1. Ve a Productos y busca \"%s\"\n2. Haz clic en \"Editar\", cambia el precio y guarda",
				product.Name, product.Price, p.Price, product.Name),
			Suggestions: []string{"Ir a productos", "Ver otros precios"},
		}
	}

	res, err := tc.Executor.Execute(ctx, business.ActionUpdatePrice, map[string]any{
		"productId": product.ID,
		"newPrice":  p.Price,
	})
	if err != nil || !res.Success {
		return executionFailed("actualizando precio", res, err)
	}

	diff := p.Price - product.Price
	return Result{
		Success: true,
		Message: fmt.Sprintf(
			"✅ **Precio actualizado**\n\n🍦 **%s**\n• Precio anterior: $%d\n• Precio nuevo: $%d\n• Diferencia: $%+d",
			product.Name, product.Price, p.Price, diff),
		ActionExecuted: true,
		Data: map[string]any{
			"product":  product.Name,
			"oldPrice": product.Price,
			"newPrice": p.Price,
		},
	}
}

func bulkOperations(p intent.Params) Result {
	msg := "📦 **Actualización masiva de precios**\n\n1. Ve a Productos → Herramientas\n2. Selecciona \"Actualización masiva\"\n3. Elige los productos y confirma"
	if p.Percent > 0 {
		msg = fmt.Sprintf("📦 **Cambio masivo del %d%%**\n\n%s", p.Percent, msg)
	}
	return Result{
		Success:     true,
		Message:     msg,
		Suggestions: []string{"Ir a productos", "Actualizar individual"},
	}
}

func expiryCheck() Result {
	return Result{
		Success:     true,
		Message:     "📅 **Control de vencimientos**\n\n1. Ve a Inventario → Vencimientos\n2. Filtra por \"Esta semana\"\n3. Marca los lotes a retirar",
		Suggestions: []string{"Ver inventario", "Programar retiro"},
	}
}

func executionFailed(what string, res business.ActionResult, err error) Result {
	detail := res.Message
	if err != nil {
		detail = err.Error()
	}
	return Result{
		Success:     false,
		Message:     fmt.Sprintf("❌ **Error %s**\n\n%s", what, detail),
		Suggestions: []string{"Intentar de nuevo", "Verificar producto", "Ver inventario"},
	}
}
