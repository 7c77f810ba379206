package entity

import "time"

// Tipos de transacción de inventario (bitácora de auditoría).
const (
	TransactionTypeIn       = "IN"
	TransactionTypeOut      = "OUT"
	TransactionTypeAdjust   = "ADJUST"
	TransactionTypeTransfer = "TRANSFER"
	TransactionTypeCount    = "COUNT"
	TransactionTypeSale     = "SALE"
	TransactionTypeDamage   = "DAMAGE"
)

// InventoryTransaction registra cada cambio sobre un InventoryLevel.
type InventoryTransaction struct {
	ID             int64
	LevelID        int64
	Type           string
	QuantityChange int64 // puede ser negativo
	QuantityAfter  int64
	Reason         string
	ReferenceDoc   string // transfer_id, order_number, etc.
	PerformedBy    string
	CreatedAt      time.Time
}
