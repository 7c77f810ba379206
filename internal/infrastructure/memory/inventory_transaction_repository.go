package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepository)(nil)

// InventoryTransactionRepository bitácora de inventario en memoria.
type InventoryTransactionRepository struct {
	db  *DB
	acc access
}

// NewInventoryTransactionRepository construye el repositorio.
func NewInventoryTransactionRepository(db *DB) *InventoryTransactionRepository {
	return &InventoryTransactionRepository{db: db, acc: access{mu: &db.mu}}
}

func (r *InventoryTransactionRepository) Create(_ context.Context, t *entity.InventoryTransaction) error {
	defer r.acc.write()()
	t.ID = r.db.nextID()
	r.db.transactions[t.ID] = *t
	return nil
}

// List devuelve las transacciones más recientes primero.
func (r *InventoryTransactionRepository) List(_ context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	defer r.acc.read()()
	list := make([]*entity.InventoryTransaction, 0)
	for _, t := range r.db.transactions {
		if f.LevelID != nil && t.LevelID != *f.LevelID {
			continue
		}
		if f.Since != nil && t.CreatedAt.Before(*f.Since) {
			continue
		}
		t := t
		list = append(list, &t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return paginate(list, f.Limit, f.Offset), nil
}
