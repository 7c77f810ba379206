package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepository)(nil)

// AlertRepository alertas en memoria.
type AlertRepository struct {
	db  *DB
	acc access
}

// NewAlertRepository construye el repositorio.
func NewAlertRepository(db *DB) *AlertRepository {
	return &AlertRepository{db: db, acc: access{mu: &db.mu}}
}

func (r *AlertRepository) Create(_ context.Context, a *entity.Alert) error {
	defer r.acc.write()()
	a.ID = r.db.nextID()
	r.db.alerts[a.ID] = *a
	return nil
}

func (r *AlertRepository) GetByID(_ context.Context, id int64) (*entity.Alert, error) {
	defer r.acc.read()()
	a, ok := r.db.alerts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AlertRepository) FindActive(_ context.Context, levelID int64, alertType string) (*entity.Alert, error) {
	defer r.acc.read()()
	for _, a := range r.db.alerts {
		if a.LevelID != nil && *a.LevelID == levelID && a.Type == alertType && a.Status == entity.AlertStatusActive {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AlertRepository) Acknowledge(_ context.Context, id int64, at time.Time) error {
	defer r.acc.write()()
	a, ok := r.db.alerts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = entity.AlertStatusAcknowledged
	a.AcknowledgedAt = &at
	r.db.alerts[id] = a
	return nil
}

func (r *AlertRepository) List(_ context.Context, f repository.AlertFilter) ([]*entity.Alert, error) {
	defer r.acc.read()()
	list := make([]*entity.Alert, 0)
	for _, a := range r.db.alerts {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.StoreID != nil && a.StoreID != *f.StoreID {
			continue
		}
		a := a
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return paginate(list, f.Limit, f.Offset), nil
}
