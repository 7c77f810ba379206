package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepository)(nil)

// InventoryLevelRepository provee niveles de inventario en memoria.
// Las lecturas completan los campos desnormalizados de producto y tienda.
type InventoryLevelRepository struct {
	db  *DB
	acc access
}

// NewInventoryLevelRepository construye el repositorio.
func NewInventoryLevelRepository(db *DB) *InventoryLevelRepository {
	return &InventoryLevelRepository{db: db, acc: access{mu: &db.mu}}
}

func (r *InventoryLevelRepository) hydrate(l entity.InventoryLevel) *entity.InventoryLevel {
	if p, ok := r.db.products[l.ProductID]; ok {
		l.ProductSKU = p.SKU
		l.ProductName = p.Name
		l.ReorderPoint = p.ReorderPoint
		l.MaxStock = p.MaxStock
	}
	if s, ok := r.db.stores[l.StoreID]; ok {
		l.StoreName = s.Name
	}
	return &l
}

func (r *InventoryLevelRepository) Create(_ context.Context, l *entity.InventoryLevel) error {
	defer r.acc.write()()
	for _, existing := range r.db.levels {
		if existing.ProductID == l.ProductID && existing.StoreID == l.StoreID {
			return domain.ErrDuplicate
		}
	}
	if l.Quantity < 0 {
		return domain.ErrNegativeStock
	}
	l.ID = r.db.nextID()
	r.db.levels[l.ID] = *l
	return nil
}

func (r *InventoryLevelRepository) GetByID(_ context.Context, id int64) (*entity.InventoryLevel, error) {
	defer r.acc.read()()
	l, ok := r.db.levels[id]
	if !ok {
		return nil, nil
	}
	return r.hydrate(l), nil
}

// GetForUpdate equivale a GetByID: dentro de TxRunner.Run el DB ya está bloqueado.
func (r *InventoryLevelRepository) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryLevel, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryLevelRepository) Find(_ context.Context, productID, storeID int64) (*entity.InventoryLevel, error) {
	defer r.acc.read()()
	for _, l := range r.db.levels {
		if l.ProductID == productID && l.StoreID == storeID {
			return r.hydrate(l), nil
		}
	}
	return nil, nil
}

func (r *InventoryLevelRepository) FindForUpdate(ctx context.Context, productID, storeID int64) (*entity.InventoryLevel, error) {
	return r.Find(ctx, productID, storeID)
}

func (r *InventoryLevelRepository) UpdateQuantity(_ context.Context, id, quantity int64, countedAt *time.Time) error {
	defer r.acc.write()()
	l, ok := r.db.levels[id]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity < 0 {
		return domain.ErrNegativeStock
	}
	l.Quantity = quantity
	if countedAt != nil {
		t := *countedAt
		l.LastCountedAt = &t
	}
	l.UpdatedAt = time.Now()
	r.db.levels[id] = l
	return nil
}

func (r *InventoryLevelRepository) List(_ context.Context, f repository.LevelFilter) ([]*entity.InventoryLevel, error) {
	defer r.acc.read()()
	list := make([]*entity.InventoryLevel, 0)
	for _, l := range r.db.levels {
		if f.ProductID != nil && l.ProductID != *f.ProductID {
			continue
		}
		if f.StoreID != nil && l.StoreID != *f.StoreID {
			continue
		}
		h := r.hydrate(l)
		if f.Status != "" && h.Status() != f.Status {
			continue
		}
		list = append(list, h)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *InventoryLevelRepository) GetProductsBelowReorderPoint(_ context.Context, storeID int64) ([]repository.ReplenishmentItem, error) {
	defer r.acc.read()()
	var items []repository.ReplenishmentItem
	for _, l := range r.db.levels {
		if storeID != 0 && l.StoreID != storeID {
			continue
		}
		p, ok := r.db.products[l.ProductID]
		if !ok || !p.IsActive || p.ReorderPoint <= 0 {
			continue
		}
		available := l.Available()
		if available > p.ReorderPoint {
			continue
		}
		items = append(items, repository.ReplenishmentItem{
			ProductID:    p.ID,
			StoreID:      l.StoreID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			CurrentStock: available,
			ReorderPoint: p.ReorderPoint,
			UnitCost:     p.CostPrice,
			Price:        p.SellingPrice,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		di := items[i].ReorderPoint - items[i].CurrentStock
		dj := items[j].ReorderPoint - items[j].CurrentStock
		if di != dj {
			return di > dj
		}
		if items[i].ProductID != items[j].ProductID {
			return items[i].ProductID < items[j].ProductID
		}
		return items[i].StoreID < items[j].StoreID
	})
	return items, nil
}
