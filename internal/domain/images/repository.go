package images

import "context"

type Repository interface {
	Create(ctx context.Context, img Image) error
	GetByID(ctx context.Context, id string) (Image, error)
	Update(ctx context.Context, img Image) error
}
