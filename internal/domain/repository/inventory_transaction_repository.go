package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// TransactionFilter criterios para la bitácora de transacciones.
type TransactionFilter struct {
	LevelID *int64
	Since   *time.Time
	Limit   int
	Offset  int
}

// InventoryTransactionRepository puerto de la bitácora de cambios de inventario.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	List(ctx context.Context, f TransactionFilter) ([]*entity.InventoryTransaction, error)
}
