package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

// raiseStockAlerts crea una alerta STOCKOUT (cantidad 0) o LOW_STOCK (disponible <= punto de
// reorden) si el nivel la amerita y no existe ya una ACTIVE del mismo tipo.
func raiseStockAlerts(ctx context.Context, alerts repository.AlertRepository, level *entity.InventoryLevel, now time.Time) error {
	if alerts == nil {
		return nil
	}
	var (
		alertType string
		severity  string
		title     string
	)
	switch level.Status() {
	case entity.LevelStatusOutOfStock:
		alertType, severity = entity.AlertTypeStockout, entity.AlertSeverityCritical
		title = "Producto agotado"
	case entity.LevelStatusLowStock:
		alertType, severity = entity.AlertTypeLowStock, entity.AlertSeverityWarning
		title = "Stock bajo"
	default:
		return nil
	}

	existing, err := alerts.FindActive(ctx, level.ID, alertType)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	levelID := level.ID
	name := level.ProductName
	if name == "" {
		name = fmt.Sprintf("producto %d", level.ProductID)
	}
	return alerts.Create(ctx, &entity.Alert{
		AlertID:     "ALT-" + uuid.New().String(),
		Type:        alertType,
		Severity:    severity,
		Status:      entity.AlertStatusActive,
		StoreID:     level.StoreID,
		LevelID:     &levelID,
		Title:       title,
		Description: fmt.Sprintf("%s: %d unidades (punto de reorden %d)", name, level.Quantity, level.ReorderPoint),
		TriggeredAt: now,
	})
}
