package repository

import (
	"context"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// VisionRepository puerto para modelos de detección, tareas y análisis de estantería.
type VisionRepository interface {
	ListModels(ctx context.Context) ([]*entity.DetectionModel, error)
	GetModel(ctx context.Context, id int64) (*entity.DetectionModel, error)
	CreateTask(ctx context.Context, task *entity.DetectionTask) error
	CreateShelfAnalysis(ctx context.Context, a *entity.ShelfAnalysis) error
	ListShelfAnalyses(ctx context.Context, storeID *int64, limit, offset int) ([]*entity.ShelfAnalysis, error)
}
