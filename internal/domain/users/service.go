package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Email    string
	Username string

	StatePreference     string
	ColorPreference     string
	MinWeightPreference *float64
	MaxWeightPreference *float64
	MinAgePreference    *float64
	MaxAgePreference    *float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Username) == "" {
		return User{}, ErrInvalidInput
	}

	now := s.now().UTC()
	u := User{
		ID:                  uuid.NewString(),
		Email:               strings.TrimSpace(in.Email),
		Username:            strings.TrimSpace(in.Username),
		StatePreference:     strings.ToUpper(strings.TrimSpace(in.StatePreference)),
		ColorPreference:     strings.ToLower(strings.TrimSpace(in.ColorPreference)),
		MinWeightPreference: in.MinWeightPreference,
		MaxWeightPreference: in.MaxWeightPreference,
		MinAgePreference:    in.MinAgePreference,
		MaxAgePreference:    in.MaxAgePreference,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// UpdatePreferencesInput: punteros = campo no enviado.
type UpdatePreferencesInput struct {
	StatePreference     *string
	ColorPreference     *string
	MinWeightPreference *float64
	MaxWeightPreference *float64
	MinAgePreference    *float64
	MaxAgePreference    *float64
	IsActive            *bool
}

func (s *Service) UpdatePreferences(ctx context.Context, id string, in UpdatePreferencesInput) (User, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return User{}, err
	}

	if in.StatePreference != nil {
		current.StatePreference = strings.ToUpper(strings.TrimSpace(*in.StatePreference))
	}
	if in.ColorPreference != nil {
		current.ColorPreference = strings.ToLower(strings.TrimSpace(*in.ColorPreference))
	}
	if in.MinWeightPreference != nil {
		current.MinWeightPreference = in.MinWeightPreference
	}
	if in.MaxWeightPreference != nil {
		current.MaxWeightPreference = in.MaxWeightPreference
	}
	if in.MinAgePreference != nil {
		current.MinAgePreference = in.MinAgePreference
	}
	if in.MaxAgePreference != nil {
		current.MaxAgePreference = in.MaxAgePreference
	}
	if in.IsActive != nil {
		current.IsActive = *in.IsActive
	}

	current.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, current); err != nil {
		return User{}, err
	}
	return current, nil
}
