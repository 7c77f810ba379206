package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo bitácora de inventario sobre PostgreSQL (usable con pool o tx).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create persiste una transacción de inventario.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (level_id, type, quantity_change, quantity_after, reason, reference_doc, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		t.LevelID, t.Type, t.QuantityChange, t.QuantityAfter, t.Reason, t.ReferenceDoc, t.PerformedBy, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// List devuelve las transacciones más recientes primero.
func (r *InventoryTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	var w whereBuilder
	if f.LevelID != nil {
		w.add("level_id = ?", *f.LevelID)
	}
	if f.Since != nil {
		w.add("created_at >= ?", *f.Since)
	}
	query := `
		SELECT id, level_id, type, quantity_change, quantity_after, reason, reference_doc, performed_by, created_at
		FROM inventory_transactions` + w.sql() + ` ORDER BY id DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.LevelID, &t.Type, &t.QuantityChange, &t.QuantityAfter,
			&t.Reason, &t.ReferenceDoc, &t.PerformedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
