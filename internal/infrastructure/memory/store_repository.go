package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepository)(nil)

// StoreRepository provee tiendas en memoria.
type StoreRepository struct {
	db  *DB
	acc access
}

// NewStoreRepository construye el repositorio.
func NewStoreRepository(db *DB) *StoreRepository {
	return &StoreRepository{db: db, acc: access{mu: &db.mu}}
}

// Add registra una tienda (usado por Seed y tests). Asigna ID si viene en 0.
func (r *StoreRepository) Add(s entity.Store) *entity.Store {
	defer r.acc.write()()
	if s.ID == 0 {
		s.ID = r.db.nextID()
	}
	r.db.stores[s.ID] = s
	return &s
}

func (r *StoreRepository) GetByID(_ context.Context, id int64) (*entity.Store, error) {
	defer r.acc.read()()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *StoreRepository) List(_ context.Context, onlyActive bool) ([]*entity.Store, error) {
	defer r.acc.read()()
	list := make([]*entity.Store, 0, len(r.db.stores))
	for _, s := range r.db.stores {
		if onlyActive && !s.IsActive {
			continue
		}
		s := s
		list = append(list, &s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
