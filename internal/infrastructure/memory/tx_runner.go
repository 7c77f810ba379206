package memory

import (
	"context"

	"github.com/jhoicas/retail-admin/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones con el lock de escritura del DB y revierte
// el estado completo si fn falla.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner sobre el almacén compartido.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con repositorios que no toman el lock (ya lo tiene Run).
func (t *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	snap := t.db.snapshot()
	repos := inventory.TxRepos{
		Levels:       &InventoryLevelRepository{db: t.db},
		Transactions: &InventoryTransactionRepository{db: t.db},
		Movements:    &StockMovementRepository{db: t.db},
		Orders:       &OrderRepository{db: t.db},
		Alerts:       &AlertRepository{db: t.db},
		Products:     &ProductRepository{db: t.db},
	}
	if err := fn(repos); err != nil {
		t.db.restore(snap)
		return err
	}
	return nil
}
