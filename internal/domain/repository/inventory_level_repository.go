package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LevelFilter criterios de búsqueda de niveles de inventario. Los campos nil/vacíos no filtran.
type LevelFilter struct {
	ProductID *int64
	StoreID   *int64
	Status    string // in_stock, low_stock, out_of_stock, overstock
	Limit     int
	Offset    int
}

// ReplenishmentItem resultado crudo del repositorio para un producto bajo reorden.
type ReplenishmentItem struct {
	ProductID    int64
	StoreID      int64
	SKU          string
	ProductName  string
	CurrentStock int64 // disponible: cantidad menos reservado
	ReorderPoint int64
	UnitCost     decimal.Decimal
	Price        decimal.Decimal
}

// InventoryLevelRepository define el puerto para consultar/actualizar stock por tienda+producto (DIP).
type InventoryLevelRepository interface {
	Create(ctx context.Context, level *entity.InventoryLevel) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryLevel, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) dentro de la transacción en curso.
	GetForUpdate(ctx context.Context, id int64) (*entity.InventoryLevel, error)
	Find(ctx context.Context, productID, storeID int64) (*entity.InventoryLevel, error)
	FindForUpdate(ctx context.Context, productID, storeID int64) (*entity.InventoryLevel, error)
	UpdateQuantity(ctx context.Context, id, quantity int64, countedAt *time.Time) error
	List(ctx context.Context, f LevelFilter) ([]*entity.InventoryLevel, error)

	// GetProductsBelowReorderPoint devuelve los niveles cuyo stock es menor o igual al punto
	// de reorden del producto, ordenados por mayor déficit primero. storeID 0 = todas las tiendas.
	GetProductsBelowReorderPoint(ctx context.Context, storeID int64) ([]ReplenishmentItem, error)
}
