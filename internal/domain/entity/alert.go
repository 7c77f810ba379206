package entity

import "time"

// Tipos de alerta generados por el inventario.
const (
	AlertTypeLowStock  = "LOW_STOCK"
	AlertTypeStockout  = "STOCKOUT"
	AlertTypeOverstock = "OVERSTOCK"
)

// Severidades y estados de alerta.
const (
	AlertSeverityWarning  = "WARNING"
	AlertSeverityCritical = "CRITICAL"

	AlertStatusActive       = "ACTIVE"
	AlertStatusAcknowledged = "ACKNOWLEDGED"
)

// Alert alerta operativa asociada a una tienda y opcionalmente a un nivel de inventario.
type Alert struct {
	ID             int64
	AlertID        string
	Type           string
	Severity       string
	Status         string
	StoreID        int64
	LevelID        *int64
	Title          string
	Description    string
	TriggeredAt    time.Time
	AcknowledgedAt *time.Time
}
