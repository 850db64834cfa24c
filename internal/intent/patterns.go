package intent

import "regexp"

// patternEntry binds one compiled regex variant to its command. Patterns are
// written against the normalizer's output: lowercase, no diacritics, no
// punctuation except $ and %, synonyms canonicalized.
type patternEntry struct {
	category Category
	command  Command
	re       *regexp.Regexp
}

// The table is evaluated top to bottom; the first structural match wins and
// there is no backtracking across categories. Compound entries come before
// inventory so "agregar 10 kg de chocolate y cambiar precio a $5000" is not
// swallowed by the plain add_stock pattern.
var table = compile([]struct {
	category Category
	command  Command
	patterns []string
}{
	{CategoryCompound, CmdStockAndPrice, []string{
		`agregar (?P<qty>\d+)\s*(?:kg|unidades|litros|gramos)?\s*(?:de |del )?(?P<product>.+?) y (?:cambiar|actualizar) (?:el )?precio a? ?\$(?P<price>\d+)`,
		`(?:stock|inventario) (?P<product>.+?) \+(?P<qty>\d+) y precio \$(?P<price>\d+)`,
		`actualizar (?P<product>.+?) (?P<qty>\d+) (?:unidades|kg) y \$(?P<price>\d+)`,
	}},
	{CategoryCompound, CmdCreateAndStock, []string{
		`crear (?:sabor )?(?P<name>.+?) \$(?P<price>\d+) con (?P<qty>\d+) (?:unidades|kg)`,
		`nuevo (?:helado )?(?P<name>.+?) a \$(?P<price>\d+) y agregar (?P<qty>\d+)`,
		`agregar producto (?P<name>.+?) \$(?P<price>\d+) stock inicial (?P<qty>\d+)`,
	}},
	{CategoryCompound, CmdMultipleOps, []string{
		`hacer todo\s+(?P<rest>.+)`,
		`ejecutar comandos\s+(?P<rest>.+)`,
		`operaciones multiples\s+(?P<rest>.+)`,
	}},
	{CategoryCompound, CmdBatchUpdate, []string{
		`actualizar varios productos`,
		`cambios masivos`,
		`operacion en lote`,
	}},

	{CategoryInventory, CmdAddStock, []string{
		`(?:agregar|suma|sumar|incrementar|aumentar|poner) (?P<qty>\d+)\s*(?P<unit>kg|unidades|litros|gramos)?\s*(?:de |del )?(?P<product>.+)`,
		`(?:incrementar|aumentar|subir) (?:el )?stock (?:de |del )?(?P<product>.+?) (?:en |por )?(?P<qty>\d+)`,
		`(?P<qty>\d+)\s*(?P<unit>kg|unidades|litros|gramos)?\s*(?:mas )?(?:de |del )?(?P<product>.+?) al (?:stock|inventario)`,
		`reponer (?P<qty>\d+)\s*(?P<unit>kg|unidades|litros)?\s*(?:de |del )?(?P<product>.+)`,
		`(?:tengo|llego|llegaron|recibi) (?P<qty>\d+)\s*(?P<unit>kg|unidades)?\s*(?:de |del )?(?P<product>.+)`,
		`(?:stock|inventario) (?P<product>.+?) (?:\+|mas) ?(?P<qty>\d+)`,
	}},
	{CategoryInventory, CmdCheckStock, []string{
		`(?:cuanto|cuantos) (?:stock |inventario )?(?:queda|quedan|hay|tengo|tenemos) (?:de |del )?(?P<product>.+)`,
		`(?:cuanto|cuantos) (?P<product>.+?) (?:queda|quedan|tengo|tenemos|hay|disponible|me queda)`,
		`(?:stock|inventario|cantidad|existencia) (?:actual )?(?:de |del )?(?P<product>.+)`,
		`que (?:cantidad|stock) (?:tengo|tenemos) (?:de |del )?(?P<product>.+)`,
		`verificar (?:stock (?:de |del )?)?(?P<product>.+)`,
		`consultar (?:inventario (?:de |del )?)?(?P<product>.+)`,
		`^(?:hay|tenemos|queda) (?P<product>.+)$`,
		`(?:dame|dime|decime) (?:el )?stock (?:de |del )?(?P<product>.+)`,
	}},
	{CategoryInventory, CmdLowStock, []string{
		`(?:productos|stock|inventario) (?:con )?(?:poco|bajo|critico|minimo)(?: stock)?`,
		`(?:ver|mostrar|listar) (?:alertas|stock bajo|productos criticos)`,
		`que (?:necesito|debo) (?:reponer|comprar|reabastecer)`,
		`alerta (?:de )?stock`,
		`productos agotandose`,
	}},
	{CategoryInventory, CmdUpdatePrice, []string{
		`(?:cambiar|actualizar|subir|bajar) (?:el )?precio (?:de |del )?(?P<product>.+?) (?:a )?\$(?P<price>\d+)`,
		`(?:precio|costo) (?:de |del )?(?P<product>.+?) (?:ahora |nuevo |sera )?\$(?P<price>\d+)`,
		`(?P<product>.+?) (?:ahora (?:cuesta|vale)|nuevo precio) \$(?P<price>\d+)`,
	}},
	{CategoryInventory, CmdCreateProduct, []string{
		`(?:crear|agregar|nuevo|nueva|lanzar) (?:nuevo )?(?:helado|sabor|producto) (?:de )?(?P<name>.+?) (?:a |por |precio )?\$(?P<price>\d+)`,
		`(?:helado|producto|sabor) (?:de )?(?P<name>.+?) (?:por |a |cuesta )?\$(?P<price>\d+)`,
	}},
	{CategoryInventory, CmdBulkOperations, []string{
		`(?:actualizar|cambiar) (?:todos los )?precios$`,
		`operacion masiva`,
		`(?:subir|bajar) (?:todos los )?precios (?:en )?(?P<pct>\d+)%`,
	}},
	{CategoryInventory, CmdExpiryCheck, []string{
		`(?:que|cuales) (?:productos )?(?:vencen|expiran) (?:hoy|manana|esta semana)`,
		`(?:revisar|verificar) (?:fechas de )?(?:vencimiento|expiracion)`,
		`productos (?:por )?vencer`,
	}},

	{CategorySales, CmdDailySales, []string{
		`cuanto (?:vendimos|vendi|hemos vendido) (?:hoy|el dia|este dia)`,
		`(?:ventas|ingresos|facturacion) (?:de )?(?:hoy|del dia|diarias)`,
		`como (?:van|estan|marchan) las ventas`,
		`balance (?:del )?dia`,
		`resumen (?:de )?ventas (?:de )?hoy`,
	}},
	{CategorySales, CmdBestSellers, []string{
		`cual es el (?:helado|producto|sabor) mas (?:vendido|popular)`,
		`(?:productos|sabores|helados) mas (?:vendidos|populares|exitosos)`,
		`(?:ranking|top|mejores) (?:\d+ )?(?:de )?(?:ventas|productos|sabores)`,
		`(?:helados|sabores) estrella`,
		`que se vende mas`,
	}},
	{CategorySales, CmdWeeklySales, []string{
		`(?:ventas|reporte|resumen) (?:de la |semanal|esta )?semana`,
		`como (?:fue|estuvo|resulto) la semana`,
		`(?:ingresos|facturacion) semanal`,
		`ultimos 7 dias`,
	}},
	{CategorySales, CmdMonthlySales, []string{
		`(?:ventas|reporte|resumen) (?:del |mensual|este )?mes$`,
		`como (?:va|esta) el mes`,
		`(?:ingresos|facturacion) mensual`,
		`performance mensual`,
	}},
	{CategorySales, CmdRegisterSale, []string{
		`(?:registrar|anotar|apuntar) venta (?:de )?(?P<qty>\d+) (?P<product>.+)`,
		`(?:vender|vendi|venta de) (?P<qty>\d+) (?P<product>.+)`,
		`(?P<qty>\d+) (?P<product>.+?) (?:vendidos|vendidas)`,
		`transaccion (?P<qty>\d+) (?P<product>.+)`,
	}},
	{CategorySales, CmdSalesTrends, []string{
		`(?:tendencia|tendencias|patrones) (?:de )?ventas`,
		`como (?:evolucionan|cambian) las ventas`,
		`analisis (?:de )?tendencias`,
		`comportamiento (?:de )?ventas`,
	}},
	{CategorySales, CmdComparePeriods, []string{
		`comparar (?:ventas )?(?:con )?(?:ayer|semana pasada|mes pasado)`,
		`(?:ventas )?vs (?:ayer|semana pasada|mes pasado)`,
		`diferencia con periodo anterior`,
	}},

	{CategoryProduction, CmdMakeBatch, []string{
		`(?:hacer|producir|preparar) (?P<qty>\d+) (?:lotes? (?:de )?)?(?:helados? (?:de )?)?(?P<product>.+)`,
		`(?:produccion|lote) (?:de )?(?P<qty>\d+) (?P<product>.+)`,
	}},
	{CategoryProduction, CmdAvailableRecipes, []string{
		`que (?:recetas|sabores) (?:podemos|puedo) hacer`,
		`(?:recetas|sabores) disponibles`,
		`que (?:puedo|podemos) (?:producir|hacer)`,
	}},
	{CategoryProduction, CmdRecipeCost, []string{
		`(?:calcular|mostrar) (?:costo|precio) (?:de (?:la )?receta (?:de )?)?(?P<product>.+)`,
		`cuanto cuesta hacer (?P<product>.+)`,
		`(?:costo|gasto) (?:de )?(?:producir|hacer) (?P<product>.+)`,
	}},

	{CategoryEmergency, CmdCriticalStock, []string{
		`(?:alerta|emergencia|urgente) (?:de )?stock`,
		`productos (?:criticos|agotados|sin stock)`,
		`(?:estado )?critico (?:del )?inventario`,
		`que se esta agotando`,
	}},
	{CategoryEmergency, CmdBusinessEmergency, []string{
		`(?:alerta|emergencia) (?:del )?negocio`,
		`(?:problema|crisis) operacional`,
		`estado critico (?:del )?sistema`,
	}},
	{CategoryEmergency, CmdUrgentRestock, []string{
		`(?:reabastecer|reponer) urgente`,
		`compra de emergencia`,
		`pedido urgente`,
	}},

	{CategoryAnalytics, CmdBusinessHealth, []string{
		`salud (?:del )?negocio`,
		`como (?:esta|va) (?:el negocio|todo)`,
		`estado general`,
		`diagnostico empresarial`,
	}},
	{CategoryAnalytics, CmdProfitAnalysis, []string{
		`analisis de (?:rentabilidad|ganancias|margen)`,
		`(?:rentabilidad|ganancias)$`,
		`productos mas rentables`,
		`cuales (?:dan|generan) mas ganancia`,
		`margen (?:de )?(?:ganancia|utilidad)`,
	}},
	{CategoryAnalytics, CmdPerformanceMetrics, []string{
		`(?:metricas|indicadores) (?:de )?(?:rendimiento|performance)`,
		`kpi (?:del )?negocio`,
		`indicadores clave`,
	}},
	{CategoryAnalytics, CmdForecast, []string{
		`(?:proyeccion|pronostico|prediccion) (?:de )?ventas`,
		`como (?:sera|estara) (?:la semana|el mes)`,
		`tendencias futuras`,
		`prediccion (?:de )?demanda`,
	}},

	{CategoryGeneral, CmdHelp, []string{
		`^(?:ayuda|help|auxilio|comandos)$`,
		`que (?:puedes|podes) hacer`,
		`(?:comandos|funciones|opciones) disponibles`,
		`manual (?:de )?usuario`,
		`guia (?:de )?uso`,
		`como (?:te )?uso`,
	}},
	{CategoryGeneral, CmdStatus, []string{
		`(?:estado|status|informacion) (?:del )?(?:sistema|negocio)`,
		`(?:resumen|dashboard|panel)(?: ejecutivo| general)?$`,
		`reporte (?:diario|general|ejecutivo)`,
	}},
	{CategoryGeneral, CmdConfiguration, []string{
		`(?:configurar|configuracion) (?:del )?(?:bot|sistema)`,
		`ajustes (?:del )?superbot`,
	}},
	{CategoryGeneral, CmdLearning, []string{
		`aprender (?:nuevo )?comando`,
		`ensenar (?:al )?bot`,
		`personalizacion inteligente`,
	}},
})

func compile(groups []struct {
	category Category
	command  Command
	patterns []string
}) []patternEntry {
	var entries []patternEntry
	for _, g := range groups {
		for _, p := range g.patterns {
			entries = append(entries, patternEntry{
				category: g.category,
				command:  g.command,
				re:       regexp.MustCompile(p),
			})
		}
	}
	return entries
}
