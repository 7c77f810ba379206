package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// El stock no vive aquí: se maneja por tienda en InventoryLevel.
type Product struct {
	ID           int64
	SKU          string // código único
	Name         string
	Description  string
	Category     string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	ReorderPoint int64 // por debajo o igual a este valor el nivel se considera bajo
	MaxStock     int64 // por encima de este valor hay sobre-stock
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
