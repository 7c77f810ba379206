package repository

import (
	"context"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// OrderFilter criterios de búsqueda de órdenes.
type OrderFilter struct {
	Status     string
	CustomerID *int64
	StoreID    *int64
	Limit      int
	Offset     int
}

// OrderRepository puerto de persistencia de órdenes y sus líneas.
type OrderRepository interface {
	// Create persiste la orden y sus líneas; asigna IDs.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	// Update persiste estado, notas y fechas (las líneas son inmutables).
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
}
