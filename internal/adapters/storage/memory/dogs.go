// Package memory implementa los repositorios sobre maps en memoria.
// Es el storage por defecto cuando no hay DB_DSN: útil para desarrollo
// local y para los tests e2e.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pupper-backend/internal/domain/dogs"
)

type DogRepository struct {
	mu    sync.RWMutex
	items map[string]dogs.Dog
}

func NewDogRepository() *DogRepository {
	return &DogRepository{items: make(map[string]dogs.Dog)}
}

func (r *DogRepository) Create(_ context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[d.ID] = cloneDog(d)
	return nil
}

func (r *DogRepository) GetByID(_ context.Context, id string) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return cloneDog(d), nil
}

func (r *DogRepository) Update(_ context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[d.ID]; !ok {
		return dogs.ErrNotFound
	}
	r.items[d.ID] = cloneDog(d)
	return nil
}

func (r *DogRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return dogs.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Scan devuelve la colección en orden determinístico por id. El orden de
// display lo decide el motor de consulta, no el repo.
func (r *DogRepository) Scan(_ context.Context) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, cloneDog(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *DogRepository) IncrementCounter(_ context.Context, id string, field dogs.CounterField, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[id]
	if !ok {
		return dogs.ErrNotFound
	}
	switch field {
	case dogs.CounterWag:
		d.WagCount += delta
	case dogs.CounterGrowl:
		d.GrowlCount += delta
	default:
		return dogs.ErrInvalidInput
	}
	d.UpdatedAt = time.Now().UTC()
	r.items[id] = d
	return nil
}

// cloneDog copia los campos con semántica de referencia para que los
// callers no muten el estado interno del repo.
func cloneDog(d dogs.Dog) dogs.Dog {
	out := d
	if d.Weight != nil {
		w := *d.Weight
		out.Weight = &w
	}
	if d.AgeYears != nil {
		a := *d.AgeYears
		out.AgeYears = &a
	}
	if d.Tags != nil {
		out.Tags = append([]string(nil), d.Tags...)
	}
	return out
}
