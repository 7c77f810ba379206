package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository provee el catálogo en memoria.
type ProductRepository struct {
	db  *DB
	acc access
}

// NewProductRepository construye el repositorio.
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db, acc: access{mu: &db.mu}}
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	defer r.acc.write()()
	for _, existing := range r.db.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	p.ID = r.db.nextID()
	r.db.products[p.ID] = *p
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.acc.read()()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepository) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.acc.read()()
	for _, p := range r.db.products {
		if p.SKU == sku {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	defer r.acc.write()()
	if _, ok := r.db.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.products[p.ID] = *p
	return nil
}

func (r *ProductRepository) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.acc.read()()
	list := make([]*entity.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, limit, offset), nil
}
