package shelters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("shelter not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Name         string
	City         string
	State        string
	ContactEmail string
	ContactPhone string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Shelter, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Shelter{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.ContactEmail) == "" {
		return Shelter{}, ErrInvalidInput
	}

	now := s.now().UTC()
	sh := Shelter{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		City:         strings.TrimSpace(in.City),
		State:        strings.ToUpper(strings.TrimSpace(in.State)),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		IsActive:     true,
		DogsCount:    0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Shelter, error) {
	return s.repo.List(ctx)
}
