package workflow

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/client"
	"github.com/jhoicas/retail-admin/pkg/logger"
)

// AdjustmentInput formulario de ajuste por producto y tienda.
type AdjustmentInput struct {
	ProductID int64  `validate:"required,gt=0"`
	StoreID   int64  `validate:"required,gt=0"`
	Delta     int64  `validate:"ne=0"`
	Reason    string `validate:"required,oneof=physical_count damaged loss correction other"`
	Notes     string `validate:"max=500"`
}

// LevelAdjustment formulario de ajuste sobre un nivel ya conocido.
type LevelAdjustment struct {
	LevelID int64  `validate:"required,gt=0"`
	Delta   int64  `validate:"ne=0"`
	Reason  string `validate:"required,oneof=physical_count damaged loss correction other"`
	Notes   string `validate:"max=500"`
}

// AdjustmentWorkflow aplica un delta con motivo a un nivel de inventario.
type AdjustmentWorkflow struct {
	base
}

// NewAdjustmentWorkflow view puede ser nil (sin recarga).
func NewAdjustmentWorkflow(api InventoryAPI, n Notifier, view Reloader, log *logger.Logger) *AdjustmentWorkflow {
	return &AdjustmentWorkflow{base: newBase(api, n, view, log, "adjustment")}
}

// Submit busca el nivel del producto en la tienda y le aplica el ajuste.
func (w *AdjustmentWorkflow) Submit(ctx context.Context, in AdjustmentInput) (*dto.LevelResponse, error) {
	if err := checkForm(in); err != nil {
		return nil, w.invalid(err)
	}
	levelID, err := w.lookup(ctx, in.ProductID, in.StoreID)
	if err != nil {
		return nil, w.fail(err, in.ProductID, in.StoreID)
	}
	return w.apply(ctx, LevelAdjustment{LevelID: levelID, Delta: in.Delta, Reason: in.Reason, Notes: in.Notes})
}

// SubmitLevel aplica el ajuste directamente sobre el nivel indicado.
func (w *AdjustmentWorkflow) SubmitLevel(ctx context.Context, in LevelAdjustment) (*dto.LevelResponse, error) {
	if err := checkForm(in); err != nil {
		return nil, w.invalid(err)
	}
	return w.apply(ctx, in)
}

func (w *AdjustmentWorkflow) apply(ctx context.Context, in LevelAdjustment) (*dto.LevelResponse, error) {
	level, err := w.patch(ctx, in)
	if err != nil {
		w.log.Error().Err(err).Int64("level_id", in.LevelID).Int64("delta", in.Delta).Msg("ajuste falló")
		w.notes.Error(msgAdjustFailed)
		return nil, err
	}
	w.log.Info().Int64("level_id", level.ID).Int64("quantity", level.Quantity).Str("reason", in.Reason).Msg("nivel ajustado")
	w.notes.Success(msgAdjustOK)
	w.refresh(ctx)
	return level, nil
}

// patch una sola petición, sin notificar ni recargar.
func (w *AdjustmentWorkflow) patch(ctx context.Context, in LevelAdjustment) (*dto.LevelResponse, error) {
	return w.api.AdjustLevel(ctx, in.LevelID, dto.AdjustLevelRequest{
		Quantity:         in.Delta,
		AdjustmentReason: in.Reason,
		Notes:            in.Notes,
	})
}

func (w *AdjustmentWorkflow) lookup(ctx context.Context, productID, storeID int64) (int64, error) {
	resp, err := w.api.ListLevels(ctx, client.LevelFilter{ProductID: productID, StoreID: storeID, Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("buscando nivel: %w", err)
	}
	for _, l := range resp.Items {
		if l.ProductID == productID && l.StoreID == storeID {
			return l.ID, nil
		}
	}
	return 0, ErrLevelNotFound
}

func (w *AdjustmentWorkflow) fail(err error, productID, storeID int64) error {
	w.log.Error().Err(err).Int64("product_id", productID).Int64("store_id", storeID).Msg("ajuste falló")
	w.notes.Error(msgAdjustFailed)
	return err
}
