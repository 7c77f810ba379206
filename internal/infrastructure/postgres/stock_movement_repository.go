package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo traslados entre tiendas sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, transfer_id, from_store_id, to_store_id, product_id, quantity, movement_type, reason, status, created_by, created_at, received_at, updated_at`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(&m.ID, &m.TransferID, &m.FromStoreID, &m.ToStoreID, &m.ProductID, &m.Quantity,
		&m.MovementType, &m.Reason, &m.Status, &m.CreatedBy, &m.CreatedAt, &m.ReceivedAt, &m.UpdatedAt)
	return &m, err
}

// Create persiste un traslado.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (transfer_id, from_store_id, to_store_id, product_id, quantity, movement_type, reason, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.TransferID, m.FromStoreID, m.ToStoreID, m.ProductID, m.Quantity, m.MovementType,
		m.Reason, m.Status, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrSameStore
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) get(ctx context.Context, query string, id int64) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// GetByID obtiene un traslado por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id)
}

// GetForUpdate bloquea el traslado hasta el fin de la transacción.
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus persiste estado y fecha de recepción.
func (r *StockMovementRepo) UpdateStatus(ctx context.Context, m *entity.StockMovement) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_movements SET status = $2, received_at = $3, updated_at = $4 WHERE id = $1`,
		m.ID, m.Status, m.ReceivedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista traslados; StoreID coincide con origen o destino.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var w whereBuilder
	if f.StoreID != nil {
		w.add("(from_store_id = ? OR to_store_id = ?)", *f.StoreID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements` + w.sql() + ` ORDER BY id DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
