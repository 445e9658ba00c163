package memory

import (
	"context"
	"sync"

	"pupper-backend/internal/domain/images"
)

type ImageRepository struct {
	mu    sync.RWMutex
	items map[string]images.Image
}

func NewImageRepository() *ImageRepository {
	return &ImageRepository{items: make(map[string]images.Image)}
}

func (r *ImageRepository) Create(_ context.Context, img images.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[img.ID] = cloneImage(img)
	return nil
}

func (r *ImageRepository) GetByID(_ context.Context, id string) (images.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.items[id]
	if !ok {
		return images.Image{}, images.ErrNotFound
	}
	return cloneImage(img), nil
}

func (r *ImageRepository) Update(_ context.Context, img images.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[img.ID]; !ok {
		return images.ErrNotFound
	}
	r.items[img.ID] = cloneImage(img)
	return nil
}

func cloneImage(img images.Image) images.Image {
	out := img
	if img.Tags != nil {
		out.Tags = append([]string(nil), img.Tags...)
	}
	if img.Variants != nil {
		out.Variants = append([]images.Variant(nil), img.Variants...)
	}
	return out
}
