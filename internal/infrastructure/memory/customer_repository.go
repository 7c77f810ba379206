package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository clientes en memoria.
type CustomerRepository struct {
	db  *DB
	acc access
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db, acc: access{mu: &db.mu}}
}

func (r *CustomerRepository) Create(_ context.Context, c *entity.Customer) error {
	defer r.acc.write()()
	for _, existing := range r.db.customers {
		if existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	c.ID = r.db.nextID()
	r.db.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	defer r.acc.read()()
	c, ok := r.db.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepository) GetByCode(_ context.Context, code string) (*entity.Customer, error) {
	defer r.acc.read()()
	for _, c := range r.db.customers {
		if c.Code == code {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

// List filtra por nombre, código o email (sin distinguir mayúsculas).
func (r *CustomerRepository) List(_ context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	defer r.acc.read()()
	needle := strings.ToLower(strings.TrimSpace(search))
	list := make([]*entity.Customer, 0)
	for _, c := range r.db.customers {
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Code), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) {
			continue
		}
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}
