package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category categoría de un artículo del catálogo.
type Category string

// Categorías válidas.
const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryHome        Category = "Home"
	CategoryFood        Category = "Food"
	CategoryOther       Category = "Other"
)

// DefaultLowStockThreshold umbral de stock bajo cuando no se indica uno.
const DefaultLowStockThreshold = 10

// Valid indica si la categoría pertenece al catálogo.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryHome, CategoryFood, CategoryOther:
		return true
	}
	return false
}

// InventoryItem representa un artículo del inventario.
// Quantity solo cambia por deltas firmados aplicados dentro de una transacción; nunca se persiste negativa.
type InventoryItem struct {
	ID                string
	Name              string // único
	Description       string
	Category          Category
	Price             decimal.Decimal
	Quantity          int
	LowStockThreshold int
	AuthorID          string // usuario dueño del artículo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si la cantidad actual está por debajo del umbral.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity < i.LowStockThreshold
}
