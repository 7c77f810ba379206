package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación de InventoryLevelRepository sobre PostgreSQL.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

const levelSelect = `
	SELECT l.id, l.product_id, l.store_id, l.quantity, l.reserved, l.last_counted_at, l.created_at, l.updated_at,
		p.sku, p.name, s.name, p.reorder_point, p.max_stock
	FROM inventory_levels l
	JOIN products p ON p.id = l.product_id
	JOIN stores s ON s.id = l.store_id`

// levelStatusSQL replica entity.InventoryLevel.Status para filtrar en la BD.
const levelStatusSQL = `CASE
		WHEN l.quantity <= 0 THEN 'out_of_stock'
		WHEN GREATEST(l.quantity - l.reserved, 0) <= p.reorder_point THEN 'low_stock'
		WHEN p.max_stock > 0 AND l.quantity > p.max_stock THEN 'overstock'
		ELSE 'in_stock' END`

func scanLevel(row pgx.Row) (*entity.InventoryLevel, error) {
	var l entity.InventoryLevel
	err := row.Scan(&l.ID, &l.ProductID, &l.StoreID, &l.Quantity, &l.Reserved, &l.LastCountedAt, &l.CreatedAt, &l.UpdatedAt,
		&l.ProductSKU, &l.ProductName, &l.StoreName, &l.ReorderPoint, &l.MaxStock)
	return &l, err
}

func (r *InventoryLevelRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryLevel, error) {
	l, err := scanLevel(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory level: %w", err)
	}
	return l, nil
}

// Create inserta un nivel nuevo (producto × tienda).
func (r *InventoryLevelRepo) Create(ctx context.Context, l *entity.InventoryLevel) error {
	query := `
		INSERT INTO inventory_levels (product_id, store_id, quantity, reserved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, l.ProductID, l.StoreID, l.Quantity, l.Reserved, l.CreatedAt, l.UpdatedAt).Scan(&l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("insert inventory level: %w", err)
	}
	return nil
}

func (r *InventoryLevelRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryLevel, error) {
	return r.getOne(ctx, levelSelect+` WHERE l.id = $1`, id)
}

// GetForUpdate bloquea la fila del nivel hasta el fin de la transacción.
func (r *InventoryLevelRepo) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryLevel, error) {
	return r.getOne(ctx, levelSelect+` WHERE l.id = $1 FOR UPDATE OF l`, id)
}

func (r *InventoryLevelRepo) Find(ctx context.Context, productID, storeID int64) (*entity.InventoryLevel, error) {
	return r.getOne(ctx, levelSelect+` WHERE l.product_id = $1 AND l.store_id = $2`, productID, storeID)
}

func (r *InventoryLevelRepo) FindForUpdate(ctx context.Context, productID, storeID int64) (*entity.InventoryLevel, error) {
	return r.getOne(ctx, levelSelect+` WHERE l.product_id = $1 AND l.store_id = $2 FOR UPDATE OF l`, productID, storeID)
}

// UpdateQuantity fija la cantidad; countedAt != nil registra el conteo físico.
func (r *InventoryLevelRepo) UpdateQuantity(ctx context.Context, id, quantity int64, countedAt *time.Time) error {
	query := `
		UPDATE inventory_levels
		SET quantity = $2, last_counted_at = COALESCE($3, last_counted_at), updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, quantity, countedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("update inventory level: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryLevelRepo) List(ctx context.Context, f repository.LevelFilter) ([]*entity.InventoryLevel, error) {
	var w whereBuilder
	if f.ProductID != nil {
		w.add("l.product_id = ?", *f.ProductID)
	}
	if f.StoreID != nil {
		w.add("l.store_id = ?", *f.StoreID)
	}
	if f.Status != "" {
		w.add(levelStatusSQL+" = ?", f.Status)
	}
	query := levelSelect + w.sql() + ` ORDER BY l.id` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLevel
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetProductsBelowReorderPoint devuelve los niveles cuyo disponible (cantidad menos reservado)
// está en o bajo el punto de reorden, la misma medida que el estado low_stock. storeID 0 considera todas las tiendas. Ordena por déficit descendente.
func (r *InventoryLevelRepo) GetProductsBelowReorderPoint(ctx context.Context, storeID int64) ([]repository.ReplenishmentItem, error) {
	query := `
		SELECT p.id, l.store_id, p.sku, p.name, GREATEST(l.quantity - l.reserved, 0), p.reorder_point, p.cost_price, p.selling_price
		FROM inventory_levels l
		JOIN products p ON p.id = l.product_id
		WHERE p.is_active
		  AND p.reorder_point > 0
		  AND GREATEST(l.quantity - l.reserved, 0) <= p.reorder_point
		  AND ($1::bigint = 0 OR l.store_id = $1)
		ORDER BY (p.reorder_point - GREATEST(l.quantity - l.reserved, 0)) DESC, p.id, l.store_id`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("get products below reorder point: %w", err)
	}
	defer rows.Close()

	var items []repository.ReplenishmentItem
	for rows.Next() {
		var item repository.ReplenishmentItem
		if err := rows.Scan(
			&item.ProductID, &item.StoreID, &item.SKU, &item.ProductName,
			&item.CurrentStock, &item.ReorderPoint,
			&item.UnitCost, &item.Price,
		); err != nil {
			return nil, fmt.Errorf("scan replenishment item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
