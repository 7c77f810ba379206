package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

// AlertUseCase consulta y reconoce alertas de inventario.
type AlertUseCase struct {
	repo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// List lista alertas filtrando por estado y tienda.
func (uc *AlertUseCase) List(ctx context.Context, status string, storeID *int64, page dto.PageRequest) (*dto.AlertListResponse, error) {
	switch status {
	case "", entity.AlertStatusActive, entity.AlertStatusAcknowledged:
	default:
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.AlertFilter{Status: status, StoreID: storeID, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Acknowledge marca la alerta como reconocida. Reconocer dos veces es ErrInvalidTransition.
func (uc *AlertUseCase) Acknowledge(ctx context.Context, id int64) (*dto.AlertResponse, error) {
	alert, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	if alert.Status != entity.AlertStatusActive {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	if err := uc.repo.Acknowledge(ctx, id, now); err != nil {
		return nil, err
	}
	alert.Status = entity.AlertStatusAcknowledged
	alert.AcknowledgedAt = &now
	return toAlertResponse(alert), nil
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:             a.ID,
		AlertID:        a.AlertID,
		Type:           a.Type,
		Severity:       a.Severity,
		Status:         a.Status,
		StoreID:        a.StoreID,
		LevelID:        a.LevelID,
		Title:          a.Title,
		Description:    a.Description,
		TriggeredAt:    a.TriggeredAt,
		AcknowledgedAt: a.AcknowledgedAt,
	}
}
