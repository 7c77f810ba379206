package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepository)(nil)

// OrderRepository órdenes y líneas en memoria.
type OrderRepository struct {
	db  *DB
	acc access
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db, acc: access{mu: &db.mu}}
}

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	defer r.acc.write()()
	for _, existing := range r.db.orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	o.ID = r.db.nextID()
	for i := range o.Lines {
		o.Lines[i].ID = r.db.nextID()
		o.Lines[i].OrderID = o.ID
	}
	r.db.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	defer r.acc.read()()
	o, ok := r.db.orders[id]
	if !ok {
		return nil, nil
	}
	cp := copyOrder(o)
	return &cp, nil
}

func (r *OrderRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) Update(_ context.Context, o *entity.Order) error {
	defer r.acc.write()()
	cur, ok := r.db.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = o.Status
	cur.Notes = o.Notes
	cur.ShippedAt = o.ShippedAt
	cur.UpdatedAt = o.UpdatedAt
	r.db.orders[o.ID] = cur
	return nil
}

func (r *OrderRepository) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	defer r.acc.read()()
	list := make([]*entity.Order, 0)
	for _, o := range r.db.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
			continue
		}
		if f.StoreID != nil && o.StoreID != *f.StoreID {
			continue
		}
		cp := copyOrder(o)
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return paginate(list, f.Limit, f.Offset), nil
}
