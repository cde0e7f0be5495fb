package memory

import (
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ store *Store }

// NewUserRepository construye el adaptador.
func NewUserRepository(store *Store) *UserRepo { return &UserRepo{store: store} }

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	uc := *u
	r.store.users[u.ID] = &uc
	return nil
}

// GetByID devuelve el usuario o nil.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	uc := *u
	return &uc, nil
}

// GetByEmail busca por email exacto.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			uc := *u
			return &uc, nil
		}
	}
	return nil, nil
}
