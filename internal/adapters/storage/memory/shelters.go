package memory

import (
	"context"
	"sort"
	"sync"

	"pupper-backend/internal/domain/shelters"
)

type ShelterRepository struct {
	mu    sync.RWMutex
	items map[string]shelters.Shelter
}

func NewShelterRepository() *ShelterRepository {
	return &ShelterRepository{items: make(map[string]shelters.Shelter)}
}

func (r *ShelterRepository) Create(_ context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = s
	return nil
}

func (r *ShelterRepository) GetByID(_ context.Context, id string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, nil
}

func (r *ShelterRepository) List(_ context.Context) ([]shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shelters.Shelter, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
