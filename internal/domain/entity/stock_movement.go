package entity

import "time"

// Tipo de movimiento que envía el cliente al crear un traslado.
const MovementTypeTransfer = "transfer"

// Estados de un traslado entre tiendas.
const (
	MovementStatusPending   = "PENDING"
	MovementStatusReceived  = "RECEIVED"
	MovementStatusCancelled = "CANCELLED"
)

// StockMovement representa un traslado de stock entre dos tiendas.
// Se crea PENDING; al aprobarse se descuenta del origen y se suma al destino.
type StockMovement struct {
	ID           int64
	TransferID   string // referencia legible, ej. "TRF-<uuid>"
	FromStoreID  int64
	ToStoreID    int64
	ProductID    int64
	Quantity     int64
	MovementType string
	Reason       string
	Status       string
	CreatedBy    string
	CreatedAt    time.Time
	ReceivedAt   *time.Time
	UpdatedAt    time.Time
}
