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

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, alert_id, type, severity, status, store_id, level_id, title, description, triggered_at, acknowledged_at`

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	err := row.Scan(&a.ID, &a.AlertID, &a.Type, &a.Severity, &a.Status, &a.StoreID, &a.LevelID,
		&a.Title, &a.Description, &a.TriggeredAt, &a.AcknowledgedAt)
	return &a, err
}

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO alerts (alert_id, type, severity, status, store_id, level_id, title, description, triggered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		a.AlertID, a.Type, a.Severity, a.Status, a.StoreID, a.LevelID, a.Title, a.Description, a.TriggeredAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (r *AlertRepo) get(ctx context.Context, query string, args ...any) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id int64) (*entity.Alert, error) {
	return r.get(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
}

func (r *AlertRepo) FindActive(ctx context.Context, levelID int64, alertType string) (*entity.Alert, error) {
	return r.get(ctx, `SELECT `+alertColumns+` FROM alerts WHERE level_id = $1 AND type = $2 AND status = 'ACTIVE' LIMIT 1`,
		levelID, alertType)
}

func (r *AlertRepo) Acknowledge(ctx context.Context, id int64, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET status = 'ACKNOWLEDGED', acknowledged_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]*entity.Alert, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.StoreID != nil {
		w.add("store_id = ?", *f.StoreID)
	}
	query := `SELECT ` + alertColumns + ` FROM alerts` + w.sql() + ` ORDER BY id DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
