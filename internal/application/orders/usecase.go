// Package orders contiene los casos de uso de órdenes de venta y clientes.
package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/inventory"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OrderUseCase crea órdenes y aplica la máquina de estados
// pending → confirmed → shipped | cancelled; pending → cancelled.
type OrderUseCase struct {
	txRunner     inventory.TxRunner
	deductor     inventory.StockDeductor
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	now          func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner inventory.TxRunner,
	deductor inventory.StockDeductor,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		deductor:     deductor,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		now:          time.Now,
	}
}

// Create valida cliente, tienda y productos; calcula totales y persiste la orden en estado pending.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID <= 0 || in.StoreID <= 0 || len(in.LineItems) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Tax.IsNegative() || in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	store, err := uc.storeRepo.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if customer == nil || store == nil {
		return nil, domain.ErrNotFound
	}

	hundred := decimal.NewFromInt(100)
	lines := make([]entity.OrderLine, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		if li.Quantity <= 0 || li.DiscountPercent.IsNegative() || li.DiscountPercent.GreaterThan(hundred) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, li.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		price := product.SellingPrice
		if li.UnitPrice != nil {
			if li.UnitPrice.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			price = *li.UnitPrice
		}
		lines = append(lines, entity.OrderLine{
			ProductID:       li.ProductID,
			Quantity:        li.Quantity,
			UnitPrice:       price,
			DiscountPercent: li.DiscountPercent,
		})
	}

	now := uc.now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	order := &entity.Order{
		OrderNumber: "ORD-" + strings.ToUpper(uuid.New().String()[:8]),
		CustomerID:  in.CustomerID,
		StoreID:     in.StoreID,
		OrderDate:   orderDate,
		Status:      entity.OrderStatusPending,
		Tax:         in.Tax,
		Discount:    in.Discount,
		Notes:       in.Notes,
		Lines:       lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	order.RecalculateTotals()
	if order.Total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas. nil, nil si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// OrderQuery filtros de GET /orders/orders/.
type OrderQuery struct {
	Status     string
	CustomerID *int64
	StoreID    *int64
	Page       dto.PageRequest
}

// List lista órdenes.
func (uc *OrderUseCase) List(ctx context.Context, q OrderQuery) (*dto.OrderListResponse, error) {
	q.Page.DefaultPage()
	list, err := uc.orderRepo.List(ctx, repository.OrderFilter{
		Status:     q.Status,
		CustomerID: q.CustomerID,
		StoreID:    q.StoreID,
		Limit:      q.Page.Limit,
		Offset:     q.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Page.Limit, Offset: q.Page.Offset},
	}, nil
}

// Update aplica cambios parciales. Un cambio de estado a confirmed pasa por Confirm
// (descuenta stock); el resto valida la transición con entity.CanTransition.
func (uc *OrderUseCase) Update(ctx context.Context, actor string, id int64, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.Status != nil && *in.Status == entity.OrderStatusConfirmed {
		return uc.confirm(ctx, actor, id, in.Notes)
	}
	return uc.update(ctx, id, in.Status, in.Notes)
}

func (uc *OrderUseCase) update(ctx context.Context, id int64, status, notes *string) (*dto.OrderResponse, error) {
	now := uc.now()
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if status != nil && *status != order.Status {
			if !entity.CanTransition(order.Status, *status) {
				return domain.ErrInvalidTransition
			}
			order.Status = *status
			if order.Status == entity.OrderStatusShipped {
				order.ShippedAt = &now
			}
		}
		if notes != nil {
			order.Notes = *notes
		}
		order.UpdatedAt = now
		if err := repos.Orders.Update(ctx, order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out), nil
}

// Confirm pasa la orden de pending a confirmed y descuenta el stock de cada línea en la tienda
// de la orden, todo en una transacción. ErrInsufficientStock revierte la confirmación completa.
func (uc *OrderUseCase) Confirm(ctx context.Context, actor string, id int64) (*dto.OrderResponse, error) {
	return uc.confirm(ctx, actor, id, nil)
}

func (uc *OrderUseCase) confirm(ctx context.Context, actor string, id int64, notes *string) (*dto.OrderResponse, error) {
	now := uc.now()
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(order.Status, entity.OrderStatusConfirmed) {
			return domain.ErrInvalidTransition
		}
		for _, line := range order.Lines {
			if err := uc.deductor.DeductInTx(ctx, repos, line.ProductID, order.StoreID, line.Quantity, order.OrderNumber, actor, now); err != nil {
				return err
			}
		}
		order.Status = entity.OrderStatusConfirmed
		if notes != nil {
			order.Notes = *notes
		}
		order.UpdatedAt = now
		if err := repos.Orders.Update(ctx, order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			LineTotal:       l.LineTotal,
		})
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		StoreID:     o.StoreID,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		Subtotal:    o.Subtotal,
		Tax:         o.Tax,
		Discount:    o.Discount,
		Total:       o.Total,
		Notes:       o.Notes,
		LineItems:   lines,
		ShippedAt:   o.ShippedAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
