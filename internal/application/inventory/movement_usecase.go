package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

// MovementUseCase registra y procesa traslados de stock entre tiendas.
// El traslado se crea PENDING; al aprobarse, resta del origen y suma al destino en la misma transacción.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	levelRepo    repository.InventoryLevelRepository
	storeRepo    repository.StoreRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	levelRepo repository.InventoryLevelRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		levelRepo:    levelRepo,
		storeRepo:    storeRepo,
		productRepo:  productRepo,
		now:          time.Now,
	}
}

// CreateTransfer valida y registra un traslado PENDING. El origen debe tener disponible suficiente.
func (uc *MovementUseCase) CreateTransfer(ctx context.Context, actor string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.MovementType != entity.MovementTypeTransfer {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID <= 0 || in.FromStoreID <= 0 || in.ToStoreID <= 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromStoreID == in.ToStoreID {
		return nil, domain.ErrSameStore
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	fromStore, err := uc.storeRepo.GetByID(ctx, in.FromStoreID)
	if err != nil {
		return nil, err
	}
	toStore, err := uc.storeRepo.GetByID(ctx, in.ToStoreID)
	if err != nil {
		return nil, err
	}
	if fromStore == nil || toStore == nil {
		return nil, domain.ErrNotFound
	}

	source, err := uc.levelRepo.Find(ctx, in.ProductID, in.FromStoreID)
	if err != nil {
		return nil, err
	}
	if source == nil || source.Available() < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	now := uc.now()
	mov := &entity.StockMovement{
		TransferID:   "TRF-" + uuid.New().String(),
		FromStoreID:  in.FromStoreID,
		ToStoreID:    in.ToStoreID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		MovementType: entity.MovementTypeTransfer,
		Reason:       in.Reason,
		Status:       entity.MovementStatusPending,
		CreatedBy:    actor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ApproveTransfer ejecuta un traslado PENDING: bloquea ambos niveles, verifica stock en origen,
// mueve la cantidad, registra dos transacciones TRANSFER y marca RECEIVED.
func (uc *MovementUseCase) ApproveTransfer(ctx context.Context, actor string, id int64) (*dto.MovementResponse, error) {
	now := uc.now()
	var out *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		mov, err := repos.Movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Status != entity.MovementStatusPending {
			return domain.ErrInvalidTransition
		}

		origin, err := repos.Levels.FindForUpdate(ctx, mov.ProductID, mov.FromStoreID)
		if err != nil {
			return err
		}
		if origin == nil || origin.Available() < mov.Quantity {
			return domain.ErrInsufficientStock
		}
		dest, err := repos.Levels.FindForUpdate(ctx, mov.ProductID, mov.ToStoreID)
		if err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.InventoryLevel{
				ProductID: mov.ProductID,
				StoreID:   mov.ToStoreID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := repos.Levels.Create(ctx, dest); err != nil {
				return err
			}
			// Recargar para traer los datos desnormalizados del producto.
			if reloaded, err := repos.Levels.GetByID(ctx, dest.ID); err == nil && reloaded != nil {
				dest = reloaded
			}
		}

		origin.Quantity -= mov.Quantity
		dest.Quantity += mov.Quantity
		if err := repos.Levels.UpdateQuantity(ctx, origin.ID, origin.Quantity, nil); err != nil {
			return err
		}
		if err := repos.Levels.UpdateQuantity(ctx, dest.ID, dest.Quantity, nil); err != nil {
			return err
		}

		for _, t := range []*entity.InventoryTransaction{
			{LevelID: origin.ID, QuantityChange: -mov.Quantity, QuantityAfter: origin.Quantity},
			{LevelID: dest.ID, QuantityChange: mov.Quantity, QuantityAfter: dest.Quantity},
		} {
			t.Type = entity.TransactionTypeTransfer
			t.Reason = mov.Reason
			t.ReferenceDoc = mov.TransferID
			t.PerformedBy = actor
			t.CreatedAt = now
			if err := repos.Transactions.Create(ctx, t); err != nil {
				return err
			}
		}
		if err := raiseStockAlerts(ctx, repos.Alerts, origin, now); err != nil {
			return err
		}

		mov.Status = entity.MovementStatusReceived
		mov.ReceivedAt = &now
		mov.UpdatedAt = now
		if err := repos.Movements.UpdateStatus(ctx, mov); err != nil {
			return err
		}
		out = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(out), nil
}

// CancelTransfer cancela un traslado PENDING. No mueve stock.
func (uc *MovementUseCase) CancelTransfer(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	now := uc.now()
	var out *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		mov, err := repos.Movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Status != entity.MovementStatusPending {
			return domain.ErrInvalidTransition
		}
		mov.Status = entity.MovementStatusCancelled
		mov.UpdatedAt = now
		if err := repos.Movements.UpdateStatus(ctx, mov); err != nil {
			return err
		}
		out = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(out), nil
}

// ListMovements lista traslados; storeID coincide con origen o destino.
func (uc *MovementUseCase) ListMovements(ctx context.Context, storeID *int64, status string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		StoreID: storeID,
		Status:  status,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		TransferID:   m.TransferID,
		FromStoreID:  m.FromStoreID,
		ToStoreID:    m.ToStoreID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		MovementType: m.MovementType,
		Reason:       m.Reason,
		Status:       m.Status,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		ReceivedAt:   m.ReceivedAt,
	}
}
