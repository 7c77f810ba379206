package entity

import "time"

// Estados derivados de un nivel de inventario.
const (
	LevelStatusInStock    = "in_stock"
	LevelStatusLowStock   = "low_stock"
	LevelStatusOutOfStock = "out_of_stock"
	LevelStatusOverstock  = "overstock"
)

// InventoryLevel representa el stock actual de un producto en una tienda.
// Quantity nunca es negativo; el backend rechaza cualquier cambio que lo deje < 0.
type InventoryLevel struct {
	ID            int64
	ProductID     int64
	StoreID       int64
	Quantity      int64
	Reserved      int64
	LastCountedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Desnormalizados desde Product para calcular Status sin otra consulta.
	ProductSKU   string
	ProductName  string
	StoreName    string
	ReorderPoint int64
	MaxStock     int64
}

// Available devuelve la cantidad disponible (en mano menos reservada).
func (l *InventoryLevel) Available() int64 {
	if l.Reserved > l.Quantity {
		return 0
	}
	return l.Quantity - l.Reserved
}

// Status clasifica el nivel según punto de reorden y stock máximo.
func (l *InventoryLevel) Status() string {
	switch {
	case l.Quantity <= 0:
		return LevelStatusOutOfStock
	case l.Available() <= l.ReorderPoint:
		return LevelStatusLowStock
	case l.MaxStock > 0 && l.Quantity > l.MaxStock:
		return LevelStatusOverstock
	default:
		return LevelStatusInStock
	}
}
