package inventory

import (
	"context"

	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Levels       repository.InventoryLevelRepository
	Transactions repository.InventoryTransactionRepository
	Movements    repository.StockMovementRepository
	Orders       repository.OrderRepository
	Alerts       repository.AlertRepository
	Products     repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: Commit si fn retorna nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
