package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.ForecastRepository = (*ForecastRepository)(nil)

// ForecastRepository modelos y resultados de pronóstico en memoria.
type ForecastRepository struct {
	db  *DB
	acc access
}

// NewForecastRepository construye el repositorio.
func NewForecastRepository(db *DB) *ForecastRepository {
	return &ForecastRepository{db: db, acc: access{mu: &db.mu}}
}

// AddModel registra un modelo de pronóstico (Seed y tests).
func (r *ForecastRepository) AddModel(m entity.ForecastModel) *entity.ForecastModel {
	defer r.acc.write()()
	m.ID = r.db.nextID()
	r.db.forecastModels[m.ID] = m
	return &m
}

func (r *ForecastRepository) ListModels(_ context.Context) ([]*entity.ForecastModel, error) {
	defer r.acc.read()()
	list := make([]*entity.ForecastModel, 0, len(r.db.forecastModels))
	for _, m := range r.db.forecastModels {
		m := m
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ForecastRepository) GetModel(_ context.Context, id int64) (*entity.ForecastModel, error) {
	defer r.acc.read()()
	m, ok := r.db.forecastModels[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *ForecastRepository) CreateForecast(_ context.Context, f *entity.Forecast) error {
	defer r.acc.write()()
	f.ID = r.db.nextID()
	r.db.forecasts[f.ID] = *f
	return nil
}

func (r *ForecastRepository) ListForecasts(_ context.Context, f repository.ForecastFilter) ([]*entity.Forecast, error) {
	defer r.acc.read()()
	list := make([]*entity.Forecast, 0)
	for _, fc := range r.db.forecasts {
		if f.ProductID != nil && fc.ProductID != *f.ProductID {
			continue
		}
		if f.Status != "" && fc.Status != f.Status {
			continue
		}
		fc := fc
		list = append(list, &fc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return paginate(list, f.Limit, f.Offset), nil
}
