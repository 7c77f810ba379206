package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.ForecastRepository = (*ForecastRepo)(nil)

// ForecastRepo modelos y resultados de pronóstico sobre PostgreSQL.
type ForecastRepo struct {
	q Querier
}

// NewForecastRepository construye el adaptador. Pasar pool o tx (Querier).
func NewForecastRepository(q Querier) *ForecastRepo {
	return &ForecastRepo{q: q}
}

const forecastModelColumns = `id, name, model_type, description, is_active, last_trained_at, created_at`

func scanForecastModel(row pgx.Row) (*entity.ForecastModel, error) {
	var m entity.ForecastModel
	err := row.Scan(&m.ID, &m.Name, &m.ModelType, &m.Description, &m.IsActive, &m.LastTrainedAt, &m.CreatedAt)
	return &m, err
}

func (r *ForecastRepo) ListModels(ctx context.Context) ([]*entity.ForecastModel, error) {
	rows, err := r.q.Query(ctx, `SELECT `+forecastModelColumns+` FROM forecast_models ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list forecast models: %w", err)
	}
	defer rows.Close()
	var list []*entity.ForecastModel
	for rows.Next() {
		m, err := scanForecastModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan forecast model: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *ForecastRepo) GetModel(ctx context.Context, id int64) (*entity.ForecastModel, error) {
	m, err := scanForecastModel(r.q.QueryRow(ctx, `SELECT `+forecastModelColumns+` FROM forecast_models WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get forecast model: %w", err)
	}
	return m, nil
}

func (r *ForecastRepo) CreateForecast(ctx context.Context, f *entity.Forecast) error {
	query := `
		INSERT INTO forecasts (model_id, product_id, store_id, forecast_days, status, date, forecast, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		f.ModelID, f.ProductID, f.StoreID, f.ForecastDays, f.Status, f.Date, f.Forecast, f.Confidence, f.CreatedAt,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("create forecast: %w", err)
	}
	return nil
}

func (r *ForecastRepo) ListForecasts(ctx context.Context, f repository.ForecastFilter) ([]*entity.Forecast, error) {
	var w whereBuilder
	if f.ProductID != nil {
		w.add("product_id = ?", *f.ProductID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	query := `
		SELECT id, model_id, product_id, store_id, forecast_days, status, date, forecast, confidence, created_at
		FROM forecasts` + w.sql() + ` ORDER BY id DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Forecast
	for rows.Next() {
		var fc entity.Forecast
		if err := rows.Scan(&fc.ID, &fc.ModelID, &fc.ProductID, &fc.StoreID, &fc.ForecastDays, &fc.Status,
			&fc.Date, &fc.Forecast, &fc.Confidence, &fc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		list = append(list, &fc)
	}
	return list, rows.Err()
}
