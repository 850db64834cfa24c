// Package business defines the boundary types shared between the command
// engine and the host application: the read-only data snapshot supplied per
// turn, the action executor that performs real mutations, and the error
// taxonomy. The engine itself never touches business state.
package business

import "context"

// Product is a catalog entry as seen in a snapshot.
type Product struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	MinimumStock int    `json:"minimum_stock"`
	Price        int    `json:"price"`
	Category     string `json:"category"`
	Active       bool   `json:"active"`
}

// BestSeller is one entry of a sales ranking.
type BestSeller struct {
	Name    string `json:"name"`
	Units   int    `json:"units"`
	Revenue int    `json:"revenue"`
}

// DailySales summarizes today's sales.
type DailySales struct {
	Total        int          `json:"total"`
	Transactions int          `json:"transactions"`
	TopProducts  []BestSeller `json:"top_products,omitempty"`
}

// LowStockAlert flags a product that needs restocking.
type LowStockAlert struct {
	Name   string `json:"name"`
	Stock  int    `json:"stock"`
	Needed int    `json:"needed"`
}

// Ingredient is a raw material tracked by production.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Minimum  float64 `json:"minimum"`
}

// Snapshot is the read-only view of business state supplied by the host for
// a single turn. The engine never mutates or caches it; all writes go
// through the ActionExecutor.
type Snapshot struct {
	Products    []Product       `json:"products"`
	SalesToday  DailySales      `json:"sales_today"`
	LowStock    []LowStockAlert `json:"low_stock"`
	Ingredients []Ingredient    `json:"ingredients,omitempty"`
	BestSellers []BestSeller    `json:"best_sellers,omitempty"`
}

// TotalProducts counts active catalog entries.
func (s Snapshot) TotalProducts() int {
	n := 0
	for _, p := range s.Products {
		if p.Active {
			n++
		}
	}
	return n
}

// FindProduct returns the product with the given id, or nil.
func (s Snapshot) FindProduct(id int) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// ActionName identifies a mutation the host application can perform.
type ActionName string

const (
	ActionAddStock              ActionName = "add_stock"
	ActionCreateProduct         ActionName = "create_product"
	ActionUpdatePrice           ActionName = "update_price"
	ActionRegisterSale          ActionName = "register_sale"
	ActionCreateProductionOrder ActionName = "create_production_order"
	ActionDelete                ActionName = "delete"
)

// ActionResult is what the host reports back after executing an action.
// Success=false is a user-visible, non-fatal failure.
type ActionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// ActionExecutor performs real mutations against business state. Supplied by
// the host application; may be nil, in which case destructive commands fall
// back to manual instructions.
type ActionExecutor interface {
	Execute(ctx context.Context, action ActionName, params map[string]any) (ActionResult, error)
}

// DataProvider supplies a fresh Snapshot per call. Provider errors mean
// "analytics temporarily unavailable", never a crash.
type DataProvider interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}
