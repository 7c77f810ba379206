package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/retail-admin/internal/application/dto"
)

// InventoryService niveles, transacciones, tiendas y traslados.
type InventoryService struct {
	c *Client
}

// LevelFilter filtros de GET inventory/levels/. Cero = sin filtro.
type LevelFilter struct {
	ProductID int64
	StoreID   int64
	Status    string
	Limit     int
	Offset    int
}

func (s *InventoryService) ListLevels(ctx context.Context, f LevelFilter) (*dto.LevelListResponse, error) {
	q := pageQuery(nil, f.Limit, f.Offset)
	setID(q, "product_id", f.ProductID)
	setID(q, "store_id", f.StoreID)
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	var out dto.LevelListResponse
	if err := s.c.do(ctx, http.MethodGet, "inventory/levels/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustLevel envía el delta con motivo al nivel indicado.
func (s *InventoryService) AdjustLevel(ctx context.Context, levelID int64, in dto.AdjustLevelRequest) (*dto.LevelResponse, error) {
	var out dto.LevelResponse
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("inventory/levels/%d/", levelID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) ListTransactions(ctx context.Context, levelID int64, days int) (*dto.TransactionListResponse, error) {
	q := url.Values{}
	setID(q, "level_id", levelID)
	if days > 0 {
		q.Set("days", fmt.Sprint(days))
	}
	var out dto.TransactionListResponse
	if err := s.c.do(ctx, http.MethodGet, "inventory/transactions/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) ListStores(ctx context.Context) (*dto.StoreListResponse, error) {
	var out dto.StoreListResponse
	if err := s.c.do(ctx, http.MethodGet, "inventory/stores/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMovement registra un traslado PENDING.
func (s *InventoryService) CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	var out dto.MovementResponse
	if err := s.c.do(ctx, http.MethodPost, "inventory/movements/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) ListMovements(ctx context.Context, storeID int64, status string) (*dto.MovementListResponse, error) {
	q := url.Values{}
	setID(q, "store_id", storeID)
	if status != "" {
		q.Set("status", status)
	}
	var out dto.MovementListResponse
	if err := s.c.do(ctx, http.MethodGet, "inventory/movements/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) ApproveMovement(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	var out dto.MovementResponse
	if err := s.c.do(ctx, http.MethodPost, fmt.Sprintf("inventory/movements/%d/approve/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InventoryService) CancelMovement(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	var out dto.MovementResponse
	if err := s.c.do(ctx, http.MethodPost, fmt.Sprintf("inventory/movements/%d/cancel/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
