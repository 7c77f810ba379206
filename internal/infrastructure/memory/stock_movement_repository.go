package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository traslados entre tiendas en memoria.
type StockMovementRepository struct {
	db  *DB
	acc access
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(db *DB) *StockMovementRepository {
	return &StockMovementRepository{db: db, acc: access{mu: &db.mu}}
}

func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.acc.write()()
	m.ID = r.db.nextID()
	r.db.movements[m.ID] = *m
	return nil
}

func (r *StockMovementRepository) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	defer r.acc.read()()
	m, ok := r.db.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *StockMovementRepository) GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *StockMovementRepository) UpdateStatus(_ context.Context, m *entity.StockMovement) error {
	defer r.acc.write()()
	cur, ok := r.db.movements[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = m.Status
	cur.ReceivedAt = m.ReceivedAt
	cur.UpdatedAt = m.UpdatedAt
	r.db.movements[m.ID] = cur
	return nil
}

func (r *StockMovementRepository) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	defer r.acc.read()()
	list := make([]*entity.StockMovement, 0)
	for _, m := range r.db.movements {
		if f.StoreID != nil && m.FromStoreID != *f.StoreID && m.ToStoreID != *f.StoreID {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		m := m
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return paginate(list, f.Limit, f.Offset), nil
}
