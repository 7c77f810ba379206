package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.VisionRepository = (*VisionRepo)(nil)

// VisionRepo modelos de detección, tareas y análisis de estantería sobre PostgreSQL.
type VisionRepo struct {
	q Querier
}

// NewVisionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVisionRepository(q Querier) *VisionRepo {
	return &VisionRepo{q: q}
}

func (r *VisionRepo) ListModels(ctx context.Context) ([]*entity.DetectionModel, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, version, is_active, created_at FROM detection_models ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list detection models: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetectionModel
	for rows.Next() {
		var m entity.DetectionModel
		if err := rows.Scan(&m.ID, &m.Name, &m.Version, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan detection model: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *VisionRepo) GetModel(ctx context.Context, id int64) (*entity.DetectionModel, error) {
	var m entity.DetectionModel
	err := r.q.QueryRow(ctx, `SELECT id, name, version, is_active, created_at FROM detection_models WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Version, &m.IsActive, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detection model: %w", err)
	}
	return &m, nil
}

func (r *VisionRepo) CreateTask(ctx context.Context, t *entity.DetectionTask) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO detection_tasks (model_id, store_id, image_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		t.ModelID, t.StoreID, t.ImageURL, t.Status, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create detection task: %w", err)
	}
	return nil
}

func (r *VisionRepo) CreateShelfAnalysis(ctx context.Context, a *entity.ShelfAnalysis) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO shelf_analyses (store_id, shelf_code, image_url, status, occupancy_pct, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		a.StoreID, a.ShelfCode, a.ImageURL, a.Status, a.OccupancyPct, a.Notes, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("create shelf analysis: %w", err)
	}
	return nil
}

func (r *VisionRepo) ListShelfAnalyses(ctx context.Context, storeID *int64, limit, offset int) ([]*entity.ShelfAnalysis, error) {
	var w whereBuilder
	if storeID != nil {
		w.add("store_id = ?", *storeID)
	}
	query := `
		SELECT id, store_id, shelf_code, image_url, status, occupancy_pct, notes, created_at
		FROM shelf_analyses` + w.sql() + ` ORDER BY id DESC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list shelf analyses: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShelfAnalysis
	for rows.Next() {
		var a entity.ShelfAnalysis
		if err := rows.Scan(&a.ID, &a.StoreID, &a.ShelfCode, &a.ImageURL, &a.Status, &a.OccupancyPct, &a.Notes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shelf analysis: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
