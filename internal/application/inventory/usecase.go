package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/inventory"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

// UseCase agrupa las operaciones de niveles de inventario, bitácora y tiendas.
// Todo cambio de cantidad pasa por TxRunner con bloqueo de fila (SELECT FOR UPDATE).
type UseCase struct {
	txRunner  TxRunner
	levelRepo repository.InventoryLevelRepository
	txnRepo   repository.InventoryTransactionRepository
	storeRepo repository.StoreRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	txRunner TxRunner,
	levelRepo repository.InventoryLevelRepository,
	txnRepo repository.InventoryTransactionRepository,
	storeRepo repository.StoreRepository,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		levelRepo: levelRepo,
		txnRepo:   txnRepo,
		storeRepo: storeRepo,
		now:       time.Now,
	}
}

// LevelQuery filtros de GET /inventory/levels/.
type LevelQuery struct {
	ProductID *int64
	StoreID   *int64
	Status    string
	Page      dto.PageRequest
}

// ListLevels lista niveles filtrando por producto, tienda y estado derivado.
func (uc *UseCase) ListLevels(ctx context.Context, q LevelQuery) (*dto.LevelListResponse, error) {
	switch q.Status {
	case "", entity.LevelStatusInStock, entity.LevelStatusLowStock, entity.LevelStatusOutOfStock, entity.LevelStatusOverstock:
	default:
		return nil, domain.ErrInvalidInput
	}
	q.Page.DefaultPage()
	list, err := uc.levelRepo.List(ctx, repository.LevelFilter{
		ProductID: q.ProductID,
		StoreID:   q.StoreID,
		Status:    q.Status,
		Limit:     q.Page.Limit,
		Offset:    q.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLevelResponse(l))
	}
	return &dto.LevelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Page.Limit, Offset: q.Page.Offset, Total: len(items)},
	}, nil
}

// GetLevel obtiene un nivel por ID. Devuelve nil, nil si no existe.
func (uc *UseCase) GetLevel(ctx context.Context, id int64) (*dto.LevelResponse, error) {
	level, err := uc.levelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, nil
	}
	return toLevelResponse(level), nil
}

// AdjustLevel aplica un delta con motivo sobre el nivel indicado. Bloquea la fila, rechaza
// resultados negativos (ErrNegativeStock), registra la transacción y evalúa alertas.
func (uc *UseCase) AdjustLevel(ctx context.Context, actor string, levelID int64, in dto.AdjustLevelRequest) (*dto.LevelResponse, error) {
	if levelID <= 0 || in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !inventory.IsValidReason(in.AdjustmentReason) {
		return nil, domain.ErrInvalidReason
	}

	now := uc.now()
	var out *entity.InventoryLevel
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		level, err := repos.Levels.GetForUpdate(ctx, levelID)
		if err != nil {
			return err
		}
		if level == nil {
			return domain.ErrNotFound
		}
		next, err := inventory.ApplyDelta(level.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		var countedAt *time.Time
		if in.AdjustmentReason == inventory.ReasonPhysicalCount {
			countedAt = &now
			level.LastCountedAt = &now
		}
		if err := repos.Levels.UpdateQuantity(ctx, level.ID, next, countedAt); err != nil {
			return err
		}
		level.Quantity = next
		level.UpdatedAt = now

		reason := in.AdjustmentReason
		if in.Notes != "" {
			reason = reason + ": " + in.Notes
		}
		txn := &entity.InventoryTransaction{
			LevelID:        level.ID,
			Type:           inventory.TransactionTypeFor(in.AdjustmentReason),
			QuantityChange: in.Quantity,
			QuantityAfter:  next,
			Reason:         reason,
			PerformedBy:    actor,
			CreatedAt:      now,
		}
		if err := repos.Transactions.Create(ctx, txn); err != nil {
			return err
		}
		if err := raiseStockAlerts(ctx, repos.Alerts, level, now); err != nil {
			return err
		}
		out = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLevelResponse(out), nil
}

// ListTransactions lista la bitácora; days > 0 limita a los últimos N días.
func (uc *UseCase) ListTransactions(ctx context.Context, levelID *int64, days int, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	page.DefaultPage()
	f := repository.TransactionFilter{LevelID: levelID, Limit: page.Limit, Offset: page.Offset}
	if days > 0 {
		since := uc.now().AddDate(0, 0, -days)
		f.Since = &since
	}
	list, err := uc.txnRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TransactionResponse{
			ID:             t.ID,
			LevelID:        t.LevelID,
			Type:           t.Type,
			QuantityChange: t.QuantityChange,
			QuantityAfter:  t.QuantityAfter,
			Reason:         t.Reason,
			ReferenceDoc:   t.ReferenceDoc,
			PerformedBy:    t.PerformedBy,
			CreatedAt:      t.CreatedAt,
		})
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// ListStores lista las tiendas activas.
func (uc *UseCase) ListStores(ctx context.Context) (*dto.StoreListResponse, error) {
	list, err := uc.storeRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StoreResponse{
			ID:       s.ID,
			Code:     s.Code,
			Name:     s.Name,
			Location: s.Location,
			Manager:  s.Manager,
			IsActive: s.IsActive,
		})
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: len(items)},
	}, nil
}

func toLevelResponse(l *entity.InventoryLevel) *dto.LevelResponse {
	if l == nil {
		return nil
	}
	return &dto.LevelResponse{
		ID:            l.ID,
		ProductID:     l.ProductID,
		StoreID:       l.StoreID,
		Quantity:      l.Quantity,
		Reserved:      l.Reserved,
		Available:     l.Available(),
		Status:        l.Status(),
		ProductSKU:    l.ProductSKU,
		ProductName:   l.ProductName,
		StoreName:     l.StoreName,
		ReorderPoint:  l.ReorderPoint,
		MaxStock:      l.MaxStock,
		LastCountedAt: l.LastCountedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}
