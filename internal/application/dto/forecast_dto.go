package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateForecastRequest body para POST /api/v1/forecasting/results/.
type CreateForecastRequest struct {
	ProductID    int64  `json:"product_id" validate:"required,gt=0"`
	StoreID      *int64 `json:"store_id,omitempty" validate:"omitempty,gt=0"`
	ForecastDays int    `json:"forecast_days" validate:"required,min=1,max=365"`
}

// RunModelRequest body para POST /api/v1/forecasting/models/{id}/run/.
type RunModelRequest struct {
	ProductIDs   []int64 `json:"product_ids" validate:"required,min=1,dive,gt=0"`
	ForecastDays int     `json:"forecast_days" validate:"required,min=1,max=365"`
}

// ForecastResponse salida de un pronóstico (pendiente o completado).
type ForecastResponse struct {
	ID           int64            `json:"id"`
	ModelID      *int64           `json:"model_id,omitempty"`
	ProductID    int64            `json:"product_id"`
	StoreID      *int64           `json:"store_id,omitempty"`
	ForecastDays int              `json:"forecast_days"`
	Status       string           `json:"status"`
	Date         time.Time        `json:"date"`
	Forecast     *decimal.Decimal `json:"forecast"`
	Confidence   *decimal.Decimal `json:"confidence"`
}

// ForecastListResponse lista paginada de pronósticos.
type ForecastListResponse struct {
	Items []ForecastResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ForecastModelResponse salida de un modelo de pronóstico.
type ForecastModelResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ModelType     string     `json:"model_type"`
	Description   string     `json:"description,omitempty"`
	IsActive      bool       `json:"is_active"`
	LastTrainedAt *time.Time `json:"last_trained_at,omitempty"`
}

// RunModelResponse resultado de encolar una corrida de modelo.
type RunModelResponse struct {
	ModelID  int64              `json:"model_id"`
	Status   string             `json:"status"`
	Requests []ForecastResponse `json:"requests"`
}
