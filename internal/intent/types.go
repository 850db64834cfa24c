// Package intent turns normalized text into a typed (category, command,
// parameters) tuple by evaluating a statically declared, compiled-once
// pattern table. First structural match wins; confidence is diagnostic only.
package intent

// Category groups related commands.
type Category string

const (
	CategoryInventory  Category = "inventory"
	CategorySales      Category = "sales"
	CategoryProduction Category = "production"
	CategoryEmergency  Category = "emergency"
	CategoryAnalytics  Category = "analytics"
	CategoryCompound   Category = "compound"
	CategoryGeneral    Category = "general"
)

// Command identifies one operation inside a category.
type Command string

const (
	// Inventory.
	CmdAddStock       Command = "add_stock"
	CmdCheckStock     Command = "check_stock"
	CmdLowStock       Command = "low_stock"
	CmdCreateProduct  Command = "create_product"
	CmdUpdatePrice    Command = "update_price"
	CmdBulkOperations Command = "bulk_operations"
	CmdExpiryCheck    Command = "expiry_check"

	// Sales.
	CmdDailySales     Command = "daily_sales"
	CmdBestSellers    Command = "best_sellers"
	CmdWeeklySales    Command = "weekly_sales"
	CmdMonthlySales   Command = "monthly_sales"
	CmdRegisterSale   Command = "register_sale"
	CmdSalesTrends    Command = "sales_trends"
	CmdComparePeriods Command = "compare_periods"

	// Production.
	CmdMakeBatch        Command = "make_batch"
	CmdAvailableRecipes Command = "available_recipes"
	CmdRecipeCost       Command = "recipe_cost"

	// Emergency.
	CmdCriticalStock     Command = "critical_stock"
	CmdBusinessEmergency Command = "business_emergency"
	CmdUrgentRestock     Command = "urgent_restock"

	// Analytics.
	CmdBusinessHealth     Command = "business_health"
	CmdProfitAnalysis     Command = "profit_analysis"
	CmdPerformanceMetrics Command = "performance_metrics"
	CmdForecast           Command = "forecast"

	// Compound.
	CmdStockAndPrice  Command = "stock_and_price"
	CmdCreateAndStock Command = "create_and_stock"
	CmdMultipleOps    Command = "multiple_operations"
	CmdBatchUpdate    Command = "batch_update"

	// General.
	CmdHelp          Command = "help"
	CmdStatus        Command = "status"
	CmdConfiguration Command = "configuration"
	CmdLearning      Command = "learning"
)

// Unit is a normalized quantity unit.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitUnits  Unit = "unidades"
	UnitLiters Unit = "litros"
	UnitGrams  Unit = "gramos"
)

// Params carries the typed parameters extracted for a command. Only the
// fields relevant to the matched command are populated.
type Params struct {
	Quantity int
	Product  string
	Name     string
	Price    int
	Percent  int
	Unit     Unit
	Rest     string
}

// Intent is the ephemeral result of one matching pass. Recomputed per turn,
// never persisted.
type Intent struct {
	Category   Category
	Command    Command
	Params     Params
	Confidence float64
}
