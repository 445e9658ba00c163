// Package memory es el blob store en memoria para desarrollo y tests.
package memory

import (
	"context"
	"io"
	"strings"
	"sync"

	"pupper-backend/internal/ports/blob"
)

const baseURL = "memory://blob"

type object struct {
	data        []byte
	contentType string
}

type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

func NewStore() *Store {
	return &Store{objects: make(map[string]object)}
}

func (s *Store) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.objects[key] = object{data: data, contentType: contentType}
	s.mu.Unlock()

	return baseURL + "/" + key, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	out := make([]byte, len(obj.data))
	copy(out, obj.data)
	return out, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return blob.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *Store) KeyForURL(url string) (string, bool) {
	prefix := baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// Len es un helper de tests: cantidad de objetos almacenados.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
