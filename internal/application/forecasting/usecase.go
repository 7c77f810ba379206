// Package forecasting registra solicitudes de pronóstico de demanda. El cálculo es externo:
// aquí solo se persisten registros "pending" y se exponen recomendaciones de reposición.
package forecasting

import (
	"context"
	"time"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/inventory"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

// UseCase casos de uso de pronósticos.
type UseCase struct {
	repo          repository.ForecastRepository
	productRepo   repository.ProductRepository
	replenishment *inventory.ReplenishmentUseCase
	now           func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.ForecastRepository,
	productRepo repository.ProductRepository,
	replenishment *inventory.ReplenishmentUseCase,
) *UseCase {
	return &UseCase{repo: repo, productRepo: productRepo, replenishment: replenishment, now: time.Now}
}

// ListResults lista pronósticos filtrando por producto y estado.
func (uc *UseCase) ListResults(ctx context.Context, productID *int64, status string, page dto.PageRequest) (*dto.ForecastListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListForecasts(ctx, repository.ForecastFilter{
		ProductID: productID,
		Status:    status,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ForecastResponse, 0, len(list))
	for _, f := range list {
		items = append(items, toForecastResponse(f))
	}
	return &dto.ForecastListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CreateResult registra una solicitud de pronóstico pendiente para un producto.
func (uc *UseCase) CreateResult(ctx context.Context, in dto.CreateForecastRequest) (*dto.ForecastResponse, error) {
	f, err := uc.request(ctx, nil, in.ProductID, in.StoreID, in.ForecastDays)
	if err != nil {
		return nil, err
	}
	out := toForecastResponse(f)
	return &out, nil
}

// ListModels lista los modelos registrados.
func (uc *UseCase) ListModels(ctx context.Context) ([]dto.ForecastModelResponse, error) {
	list, err := uc.repo.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ForecastModelResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ForecastModelResponse{
			ID:            m.ID,
			Name:          m.Name,
			ModelType:     m.ModelType,
			Description:   m.Description,
			IsActive:      m.IsActive,
			LastTrainedAt: m.LastTrainedAt,
		})
	}
	return out, nil
}

// RunModel encola una corrida del modelo: un pronóstico pendiente por producto solicitado.
func (uc *UseCase) RunModel(ctx context.Context, modelID int64, in dto.RunModelRequest) (*dto.RunModelResponse, error) {
	if len(in.ProductIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	model, err := uc.repo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, domain.ErrNotFound
	}
	if !model.IsActive {
		return nil, domain.ErrConflict
	}
	// Todos los productos se validan antes de registrar nada: una corrida queda completa o no existe.
	ids := make([]int64, 0, len(in.ProductIDs))
	seen := make(map[int64]bool, len(in.ProductIDs))
	for _, pid := range in.ProductIDs {
		if seen[pid] {
			continue
		}
		if err := uc.check(ctx, pid, in.ForecastDays); err != nil {
			return nil, err
		}
		seen[pid] = true
		ids = append(ids, pid)
	}
	requests := make([]dto.ForecastResponse, 0, len(ids))
	for _, pid := range ids {
		f, err := uc.create(ctx, &model.ID, pid, nil, in.ForecastDays)
		if err != nil {
			return nil, err
		}
		requests = append(requests, toForecastResponse(f))
	}
	return &dto.RunModelResponse{
		ModelID:  model.ID,
		Status:   entity.ForecastStatusPending,
		Requests: requests,
	}, nil
}

// Recommendations delega en el cálculo de reposición (productos en o bajo punto de reorden).
func (uc *UseCase) Recommendations(ctx context.Context, storeID int64) (*dto.RecommendationListResponse, error) {
	list, err := uc.replenishment.GenerateReplenishmentList(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &dto.RecommendationListResponse{Total: len(list), Items: list}, nil
}

func (uc *UseCase) request(ctx context.Context, modelID *int64, productID int64, storeID *int64, days int) (*entity.Forecast, error) {
	if err := uc.check(ctx, productID, days); err != nil {
		return nil, err
	}
	return uc.create(ctx, modelID, productID, storeID, days)
}

func (uc *UseCase) check(ctx context.Context, productID int64, days int) error {
	if productID <= 0 || days <= 0 || days > 365 {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *UseCase) create(ctx context.Context, modelID *int64, productID int64, storeID *int64, days int) (*entity.Forecast, error) {
	now := uc.now()
	f := &entity.Forecast{
		ModelID:      modelID,
		ProductID:    productID,
		StoreID:      storeID,
		ForecastDays: days,
		Status:       entity.ForecastStatusPending,
		Date:         now.Truncate(24 * time.Hour),
		CreatedAt:    now,
	}
	if err := uc.repo.CreateForecast(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func toForecastResponse(f *entity.Forecast) dto.ForecastResponse {
	return dto.ForecastResponse{
		ID:           f.ID,
		ModelID:      f.ModelID,
		ProductID:    f.ProductID,
		StoreID:      f.StoreID,
		ForecastDays: f.ForecastDays,
		Status:       f.Status,
		Date:         f.Date,
		Forecast:     f.Forecast,
		Confidence:   f.Confidence,
	}
}
