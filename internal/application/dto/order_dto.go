package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden nueva.
type OrderLineRequest struct {
	ProductID       int64            `json:"product_id" validate:"required,gt=0"`
	Quantity        int64            `json:"quantity" validate:"required,gt=0"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"` // nil = precio de venta del producto
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// CreateOrderRequest body para POST /api/v1/orders/orders/.
type CreateOrderRequest struct {
	CustomerID int64              `json:"customer_id" validate:"required,gt=0"`
	StoreID    int64              `json:"store_id" validate:"required,gt=0"`
	OrderDate  *time.Time         `json:"order_date,omitempty"`
	LineItems  []OrderLineRequest `json:"line_items" validate:"required,min=1,dive"`
	Tax        decimal.Decimal    `json:"tax"`
	Discount   decimal.Decimal    `json:"discount"`
	Notes      string             `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpdateOrderRequest body para PATCH /api/v1/orders/orders/{id}/. Solo campos presentes se aplican.
type UpdateOrderRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed shipped cancelled"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// OrderLineResponse salida de una línea.
type OrderLineResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          int64               `json:"id"`
	OrderNumber string              `json:"order_number"`
	CustomerID  int64               `json:"customer_id"`
	StoreID     int64               `json:"store_id"`
	OrderDate   time.Time           `json:"order_date"`
	Status      string              `json:"status"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	Tax         decimal.Decimal     `json:"tax"`
	Discount    decimal.Decimal     `json:"discount"`
	Total       decimal.Decimal     `json:"total"`
	Notes       string              `json:"notes,omitempty"`
	LineItems   []OrderLineResponse `json:"line_items"`
	ShippedAt   *time.Time          `json:"shipped_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateCustomerRequest body para POST /api/v1/orders/customers/.
type CreateCustomerRequest struct {
	Code  string `json:"code" validate:"required,min=1,max=100"`
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=20"`
	City  string `json:"city,omitempty" validate:"omitempty,max=100"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	City          string    `json:"city,omitempty"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
