package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/retail-admin/internal/application/dto"
)

// OrdersService órdenes de venta y clientes.
type OrdersService struct {
	c *Client
}

func (s *OrdersService) List(ctx context.Context, status string) (*dto.OrderListResponse, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	var out dto.OrderListResponse
	if err := s.c.do(ctx, http.MethodGet, "orders/orders/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrdersService) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	var out dto.OrderResponse
	if err := s.c.do(ctx, http.MethodPost, "orders/orders/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update aplica notes y/o status; las transiciones las valida el servidor.
func (s *OrdersService) Update(ctx context.Context, id int64, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var out dto.OrderResponse
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("orders/orders/%d/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Confirm confirma la orden; el servidor descuenta el stock.
func (s *OrdersService) Confirm(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	var out dto.OrderResponse
	if err := s.c.do(ctx, http.MethodPost, fmt.Sprintf("orders/orders/%d/confirm/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrdersService) ListCustomers(ctx context.Context, search string) (*dto.CustomerListResponse, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var out dto.CustomerListResponse
	if err := s.c.do(ctx, http.MethodGet, "orders/customers/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
