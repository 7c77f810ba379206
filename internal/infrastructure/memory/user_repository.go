package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepository struct {
	db  *DB
	acc access
}

// NewUserRepository construye el repositorio.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db, acc: access{mu: &db.mu}}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	defer r.acc.write()()
	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.db.nextID()
	r.db.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	defer r.acc.read()()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.acc.read()()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	defer r.acc.read()()
	list := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, limit, offset), nil
}
