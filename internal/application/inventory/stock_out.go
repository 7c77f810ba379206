package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// StockDeductor descuenta stock dentro de una transacción abierta por otro caso de uso
// (ej. confirmación de órdenes).
type StockDeductor interface {
	DeductInTx(ctx context.Context, repos TxRepos, productID, storeID, quantity int64, reference, actor string, now time.Time) error
}

var _ StockDeductor = (*UseCase)(nil)

// DeductInTx ejecuta una salida (SALE) usando los repositorios de la transacción del caller.
// Bloquea la fila y retorna ErrInsufficientStock si el disponible no alcanza.
func (uc *UseCase) DeductInTx(
	ctx context.Context,
	repos TxRepos,
	productID, storeID, quantity int64,
	reference, actor string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	level, err := repos.Levels.FindForUpdate(ctx, productID, storeID)
	if err != nil {
		return err
	}
	if level == nil || level.Available() < quantity {
		return domain.ErrInsufficientStock
	}
	level.Quantity -= quantity
	level.UpdatedAt = now
	if err := repos.Levels.UpdateQuantity(ctx, level.ID, level.Quantity, nil); err != nil {
		return err
	}
	txn := &entity.InventoryTransaction{
		LevelID:        level.ID,
		Type:           entity.TransactionTypeSale,
		QuantityChange: -quantity,
		QuantityAfter:  level.Quantity,
		ReferenceDoc:   reference,
		PerformedBy:    actor,
		CreatedAt:      now,
	}
	if err := repos.Transactions.Create(ctx, txn); err != nil {
		return err
	}
	return raiseStockAlerts(ctx, repos.Alerts, level, now)
}
