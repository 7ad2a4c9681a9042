package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepository struct {
	with access
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return r.with(func(st *state) error {
		for _, o := range st.users {
			if strings.EqualFold(o.Email, u.Email) {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.with(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.with(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
