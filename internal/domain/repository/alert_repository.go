package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// AlertFilter criterios de búsqueda de alertas.
type AlertFilter struct {
	Status  string
	StoreID *int64
	Limit   int
	Offset  int
}

// AlertRepository puerto de persistencia de alertas.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id int64) (*entity.Alert, error)
	// FindActive devuelve la alerta ACTIVE del tipo indicado para el nivel, o nil.
	FindActive(ctx context.Context, levelID int64, alertType string) (*entity.Alert, error)
	Acknowledge(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, f AlertFilter) ([]*entity.Alert, error)
}
