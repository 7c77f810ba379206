package repository

import (
	"context"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// ForecastFilter criterios de búsqueda de pronósticos.
type ForecastFilter struct {
	ProductID *int64
	Status    string
	Limit     int
	Offset    int
}

// ForecastRepository puerto para modelos y resultados de pronóstico.
type ForecastRepository interface {
	ListModels(ctx context.Context) ([]*entity.ForecastModel, error)
	GetModel(ctx context.Context, id int64) (*entity.ForecastModel, error)
	CreateForecast(ctx context.Context, f *entity.Forecast) error
	ListForecasts(ctx context.Context, f ForecastFilter) ([]*entity.Forecast, error)
}
