// Package vision registra solicitudes de análisis de estantería y detección de productos.
// El procesamiento de imágenes es externo; los registros se crean en estado "pending".
package vision

import (
	"context"
	"time"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

// UseCase casos de uso de visión.
type UseCase struct {
	repo      repository.VisionRepository
	storeRepo repository.StoreRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.VisionRepository, storeRepo repository.StoreRepository) *UseCase {
	return &UseCase{repo: repo, storeRepo: storeRepo, now: time.Now}
}

// ListShelfAnalyses lista análisis de estantería, opcionalmente por tienda.
func (uc *UseCase) ListShelfAnalyses(ctx context.Context, storeID *int64, page dto.PageRequest) (*dto.ShelfAnalysisListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListShelfAnalyses(ctx, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShelfAnalysisResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toShelfAnalysisResponse(a))
	}
	return &dto.ShelfAnalysisListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CreateShelfAnalysis registra un análisis pendiente.
func (uc *UseCase) CreateShelfAnalysis(ctx context.Context, in dto.CreateShelfAnalysisRequest) (*dto.ShelfAnalysisResponse, error) {
	if in.ShelfCode == "" || in.ImageURL == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireStore(ctx, in.StoreID); err != nil {
		return nil, err
	}
	a := &entity.ShelfAnalysis{
		StoreID:   in.StoreID,
		ShelfCode: in.ShelfCode,
		ImageURL:  in.ImageURL,
		Status:    entity.VisionStatusPending,
		Notes:     in.Notes,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.CreateShelfAnalysis(ctx, a); err != nil {
		return nil, err
	}
	out := toShelfAnalysisResponse(a)
	return &out, nil
}

// ListDetectionModels lista los modelos de detección.
func (uc *UseCase) ListDetectionModels(ctx context.Context) ([]dto.DetectionModelResponse, error) {
	list, err := uc.repo.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DetectionModelResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.DetectionModelResponse{ID: m.ID, Name: m.Name, Version: m.Version, IsActive: m.IsActive})
	}
	return out, nil
}

// CreateDetectionTask encola una tarea de detección sobre un modelo activo.
func (uc *UseCase) CreateDetectionTask(ctx context.Context, in dto.CreateDetectionTaskRequest) (*dto.DetectionTaskResponse, error) {
	if in.ImageURL == "" {
		return nil, domain.ErrInvalidInput
	}
	model, err := uc.repo.GetModel(ctx, in.ModelID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, domain.ErrNotFound
	}
	if !model.IsActive {
		return nil, domain.ErrConflict
	}
	if err := uc.requireStore(ctx, in.StoreID); err != nil {
		return nil, err
	}
	t := &entity.DetectionTask{
		ModelID:   in.ModelID,
		StoreID:   in.StoreID,
		ImageURL:  in.ImageURL,
		Status:    entity.VisionStatusPending,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return &dto.DetectionTaskResponse{
		ID:        t.ID,
		ModelID:   t.ModelID,
		StoreID:   t.StoreID,
		ImageURL:  t.ImageURL,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}, nil
}

func (uc *UseCase) requireStore(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toShelfAnalysisResponse(a *entity.ShelfAnalysis) dto.ShelfAnalysisResponse {
	return dto.ShelfAnalysisResponse{
		ID:           a.ID,
		StoreID:      a.StoreID,
		ShelfCode:    a.ShelfCode,
		ImageURL:     a.ImageURL,
		Status:       a.Status,
		OccupancyPct: a.OccupancyPct,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
	}
}
