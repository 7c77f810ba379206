package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase genera las recomendaciones de reposición por tienda.
// Prioriza los SKUs con mayor margen y, a igual margen, el mayor déficit.
type ReplenishmentUseCase struct {
	levelRepo repository.InventoryLevelRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(levelRepo repository.InventoryLevelRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{levelRepo: levelRepo}
}

// GenerateReplenishmentList devuelve los productos en o bajo el punto de reorden con la cantidad
// sugerida de pedido (ideal = reorden × 1.5). storeID 0 considera todas las tiendas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, storeID int64) ([]dto.ReplenishmentSuggestionDTO, error) {
	rawItems, err := uc.levelRepo.GetProductsBelowReorderPoint(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	hundred := decimal.NewFromInt(100)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		ideal := decimal.NewFromInt(item.ReorderPoint).Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart()
		suggested := ideal - item.CurrentStock
		if suggested < 0 {
			suggested = 0
		}

		var grossMarginPct decimal.Decimal
		if item.Price.GreaterThan(decimal.Zero) {
			grossMarginPct = item.Price.Sub(item.UnitCost).Div(item.Price).Mul(hundred).Round(2)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          item.ProductID,
			StoreID:            item.StoreID,
			SKU:                item.SKU,
			ProductName:        item.ProductName,
			CurrentStock:       item.CurrentStock,
			ReorderPoint:       item.ReorderPoint,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           item.UnitCost,
			EstimatedOrderCost: decimal.NewFromInt(suggested).Mul(item.UnitCost),
			GrossMarginPct:     grossMarginPct,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		return a.ReorderPoint-a.CurrentStock > b.ReorderPoint-b.CurrentStock
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
