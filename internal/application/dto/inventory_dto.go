package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustLevelRequest body para PATCH /api/v1/inventory/levels/{id}/.
// Quantity es un delta con signo, no la cantidad final.
type AdjustLevelRequest struct {
	Quantity         int64  `json:"quantity" validate:"required,ne=0"`
	AdjustmentReason string `json:"adjustment_reason" validate:"required,oneof=physical_count damaged loss correction other"`
	Notes            string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// LevelResponse salida de un nivel de inventario.
type LevelResponse struct {
	ID            int64      `json:"id"`
	ProductID     int64      `json:"product_id"`
	StoreID       int64      `json:"store_id"`
	Quantity      int64      `json:"quantity"`
	Reserved      int64      `json:"reserved"`
	Available     int64      `json:"available"`
	Status        string     `json:"status"`
	ProductSKU    string     `json:"product_sku,omitempty"`
	ProductName   string     `json:"product_name,omitempty"`
	StoreName     string     `json:"store_name,omitempty"`
	ReorderPoint  int64      `json:"reorder_point"`
	MaxStock      int64      `json:"max_stock"`
	LastCountedAt *time.Time `json:"last_counted_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// LevelListResponse lista paginada de niveles.
type LevelListResponse struct {
	Items []LevelResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateMovementRequest body para POST /api/v1/inventory/movements/.
type CreateMovementRequest struct {
	FromStoreID  int64  `json:"from_store_id" validate:"required,gt=0"`
	ToStoreID    int64  `json:"to_store_id" validate:"required,gt=0"`
	ProductID    int64  `json:"product_id" validate:"required,gt=0"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
	MovementType string `json:"movement_type" validate:"required,eq=transfer"`
	Reason       string `json:"reason,omitempty" validate:"omitempty,max=255"`
}

// MovementResponse salida de un traslado.
type MovementResponse struct {
	ID           int64      `json:"id"`
	TransferID   string     `json:"transfer_id"`
	FromStoreID  int64      `json:"from_store_id"`
	ToStoreID    int64      `json:"to_store_id"`
	ProductID    int64      `json:"product_id"`
	Quantity     int64      `json:"quantity"`
	MovementType string     `json:"movement_type"`
	Reason       string     `json:"reason,omitempty"`
	Status       string     `json:"status"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	ReceivedAt   *time.Time `json:"received_at,omitempty"`
}

// MovementListResponse lista paginada de traslados.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TransactionResponse salida de una transacción de la bitácora.
type TransactionResponse struct {
	ID             int64     `json:"id"`
	LevelID        int64     `json:"level_id"`
	Type           string    `json:"transaction_type"`
	QuantityChange int64     `json:"quantity_change"`
	QuantityAfter  int64     `json:"quantity_after"`
	Reason         string    `json:"reason,omitempty"`
	ReferenceDoc   string    `json:"reference_doc,omitempty"`
	PerformedBy    string    `json:"performed_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Manager  string `json:"manager,omitempty"`
	IsActive bool   `json:"is_active"`
}

// StoreListResponse lista de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un SKU
// que se encuentra en o por debajo de su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          int64           `json:"product_id"`
	StoreID            int64           `json:"store_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int64           `json:"current_stock"`
	ReorderPoint       int64           `json:"reorder_point"`
	IdealStock         int64           `json:"ideal_stock"`         // ReorderPoint * 1.5
	SuggestedOrderQty  int64           `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	Priority           int             `json:"priority"` // 1 = más urgente
}

// RecommendationListResponse lista de recomendaciones de reposición.
type RecommendationListResponse struct {
	Total int                          `json:"total"`
	Items []ReplenishmentSuggestionDTO `json:"items"`
}
