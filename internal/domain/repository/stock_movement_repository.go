package repository

import (
	"context"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// MovementFilter criterios de búsqueda de traslados. StoreID coincide con origen o destino.
type MovementFilter struct {
	StoreID *int64
	Status  string
	Limit   int
	Offset  int
}

// StockMovementRepository define el puerto de persistencia para traslados entre tiendas (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error)
	UpdateStatus(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
}
