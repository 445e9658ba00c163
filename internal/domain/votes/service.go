package votes

import (
	"context"
	"errors"
	"strings"
	"time"

	"pupper-backend/internal/domain/dogs"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vote not found")
)

// DogCounters es lo que votes necesita del módulo de perros: existencia
// y el incremento atómico de contadores.
type DogCounters interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
	IncrementCounter(ctx context.Context, id string, field dogs.CounterField, delta int) error
}

type Service struct {
	repo Repository
	dogs DogCounters
	now  func() time.Time
}

func NewService(repo Repository, dogSvc DogCounters) *Service {
	return &Service{
		repo: repo,
		dogs: dogSvc,
		now:  time.Now,
	}
}

// Cast registra (o pisa) el voto del usuario y SIEMPRE incrementa el
// contador del tipo votado, incluso en re-votos o cambios de voto, sin
// decrementar el contador anterior. Es el comportamiento heredado del
// sistema original; los contadores son monotónicos por diseño y el
// double-count en cambios de voto quedó como decisión de producto abierta.
// No "arreglar" acá sin clarificación.
func (s *Service) Cast(ctx context.Context, dogID, userID string, voteType VoteType) (Vote, error) {
	if strings.TrimSpace(userID) == "" {
		return Vote{}, ErrInvalidInput
	}
	if strings.TrimSpace(dogID) == "" {
		return Vote{}, ErrInvalidInput
	}

	// El perro tiene que existir antes de aceptar el voto.
	if _, err := s.dogs.GetByID(ctx, dogID); err != nil {
		return Vote{}, err
	}

	now := s.now().UTC()
	v := Vote{
		UserID:    userID,
		DogID:     dogID,
		Type:      voteType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Put(ctx, v); err != nil {
		return Vote{}, err
	}

	// Incremento atómico en el storage: los votos concurrentes al mismo
	// perro no se pierden (nada de read-modify-write acá).
	if err := s.dogs.IncrementCounter(ctx, dogID, voteType.CounterField(), 1); err != nil {
		return Vote{}, err
	}

	return v, nil
}
