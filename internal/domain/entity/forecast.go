package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pronóstico. El cálculo no vive en este sistema: los registros
// se crean "pending" y un servicio externo los completa.
const (
	ForecastStatusPending   = "pending"
	ForecastStatusCompleted = "completed"
	ForecastStatusFailed    = "failed"
)

// ForecastModel modelo de pronóstico de demanda registrado.
type ForecastModel struct {
	ID            int64
	Name          string
	ModelType     string // ARIMA, LSTM, PROPHET, ENSEMBLE
	Description   string
	IsActive      bool
	LastTrainedAt *time.Time
	CreatedAt     time.Time
}

// Forecast resultado (o solicitud pendiente) de pronóstico para un producto.
type Forecast struct {
	ID           int64
	ModelID      *int64
	ProductID    int64
	StoreID      *int64
	ForecastDays int
	Status       string
	Date         time.Time
	Forecast     *decimal.Decimal
	Confidence   *decimal.Decimal
	CreatedAt    time.Time
}
