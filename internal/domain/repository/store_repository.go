package repository

import (
	"context"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para tiendas (DIP).
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Store, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Store, error)
}
