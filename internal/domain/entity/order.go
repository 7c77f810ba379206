package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// orderTransitions: pending → confirmed → shipped | cancelled; pending → cancelled.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
}

// CanTransition informa si la orden puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order representa una orden de venta de una tienda a un cliente.
type Order struct {
	ID          int64
	OrderNumber string
	CustomerID  int64
	StoreID     int64
	OrderDate   time.Time
	Status      string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	Notes       string
	Lines       []OrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShippedAt   *time.Time
}

// OrderLine línea de detalle de una orden.
type OrderLine struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	Quantity        int64
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal
}

// ComputeLineTotal calcula cantidad × precio × (1 − descuento%/100), redondeado a 2 decimales.
func (l *OrderLine) ComputeLineTotal() decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Sub(l.DiscountPercent.Div(decimal.NewFromInt(100)))
	l.LineTotal = decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice).Mul(multiplier).Round(2)
	return l.LineTotal
}

// RecalculateTotals recalcula subtotal y total a partir de las líneas.
func (o *Order) RecalculateTotals() {
	subtotal := decimal.Zero
	for i := range o.Lines {
		subtotal = subtotal.Add(o.Lines[i].ComputeLineTotal())
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(o.Tax).Sub(o.Discount)
}
