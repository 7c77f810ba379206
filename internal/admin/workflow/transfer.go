package workflow

import (
	"context"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/pkg/logger"
)

// MovementTypeTransfer tipo de movimiento que crea el formulario de traslado.
const MovementTypeTransfer = "transfer"

// TransferInput formulario de traslado. Origen igual a destino y stock insuficiente
// los rechaza el servidor.
type TransferInput struct {
	FromStoreID int64  `validate:"required,gt=0"`
	ToStoreID   int64  `validate:"required,gt=0"`
	ProductID   int64  `validate:"required,gt=0"`
	Quantity    int64  `validate:"required,gt=0"`
	Reason      string `validate:"max=255"`
}

// TransferWorkflow crea traslados entre tiendas.
type TransferWorkflow struct {
	base
}

func NewTransferWorkflow(api InventoryAPI, n Notifier, view Reloader, log *logger.Logger) *TransferWorkflow {
	return &TransferWorkflow{base: newBase(api, n, view, log, "transfer")}
}

// Submit envía un único POST de tipo transfer.
func (w *TransferWorkflow) Submit(ctx context.Context, in TransferInput) (*dto.MovementResponse, error) {
	if err := checkForm(in); err != nil {
		return nil, w.invalid(err)
	}
	mv, err := w.api.CreateMovement(ctx, dto.CreateMovementRequest{
		FromStoreID:  in.FromStoreID,
		ToStoreID:    in.ToStoreID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		MovementType: MovementTypeTransfer,
		Reason:       in.Reason,
	})
	if err != nil {
		w.log.Error().Err(err).
			Int64("from_store_id", in.FromStoreID).
			Int64("to_store_id", in.ToStoreID).
			Int64("product_id", in.ProductID).
			Msg("traslado falló")
		w.notes.Error(msgTransferFail)
		return nil, err
	}
	w.log.Info().Str("transfer_id", mv.TransferID).Int64("quantity", mv.Quantity).Msg("traslado creado")
	w.notes.Success(msgTransferOK)
	w.refresh(ctx)
	return mv, nil
}
