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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes y líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// beginner lo implementan *pgxpool.Pool y pgx.Tx (savepoint).
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

const orderColumns = `id, order_number, customer_id, store_id, order_date, status, subtotal, tax, discount, total, notes, shipped_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.StoreID, &o.OrderDate, &o.Status,
		&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.Notes, &o.ShippedAt, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

// Create inserta la orden y sus líneas de forma atómica.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	b, ok := r.q.(beginner)
	if !ok {
		return r.insert(ctx, r.q, o)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.insert(ctx, tx, o); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order insert: %w", err)
	}
	return nil
}

func (r *OrderRepo) insert(ctx context.Context, q Querier, o *entity.Order) error {
	query := `
		INSERT INTO orders (order_number, customer_id, store_id, order_date, status, subtotal, tax, discount, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := q.QueryRow(ctx, query,
		o.OrderNumber, o.CustomerID, o.StoreID, o.OrderDate, o.Status,
		o.Subtotal, o.Tax, o.Discount, o.Total, o.Notes, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range o.Lines {
		l := &o.Lines[i]
		l.OrderID = o.ID
		err := q.QueryRow(ctx, `
			INSERT INTO order_lines (order_id, product_id, quantity, unit_price, discount_percent, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			l.OrderID, l.ProductID, l.Quantity, l.UnitPrice, l.DiscountPercent, l.LineTotal,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) get(ctx context.Context, query string, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID obtiene la orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la orden hasta el fin de la transacción.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste estado, notas y fecha de despacho.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, notes = $3, shipped_at = $4, updated_at = $5 WHERE id = $1`,
		o.ID, o.Status, o.Notes, o.ShippedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes (más recientes primero) con sus líneas.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.CustomerID != nil {
		w.add("customer_id = ?", *f.CustomerID)
	}
	if f.StoreID != nil {
		w.add("store_id = ?", *f.StoreID)
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + w.sql() + ` ORDER BY id DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadLines carga las líneas de varias órdenes con una sola consulta.
func (r *OrderRepo) loadLines(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*entity.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, discount_percent, line_total
		FROM order_lines WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.DiscountPercent, &l.LineTotal); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		if o := byID[l.OrderID]; o != nil {
			o.Lines = append(o.Lines, l)
		}
	}
	return rows.Err()
}
