package memory

import (
	"context"
	"sync"

	"pupper-backend/internal/domain/users"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]users.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]users.User)}
}

func (r *UserRepository) Create(_ context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[u.ID] = u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.items[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) Update(_ context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return users.ErrNotFound
	}
	r.items[u.ID] = u
	return nil
}
