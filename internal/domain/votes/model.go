package votes

import (
	"strings"
	"time"

	"pupper-backend/internal/domain/dogs"
)

// VoteType es la reacción del usuario: wag (positiva) o growl (negativa).
type VoteType string

const (
	VoteWag   VoteType = "wag"
	VoteGrowl VoteType = "growl"
)

// ParseVoteType normaliza y valida el vote_type del wire.
func ParseVoteType(s string) (VoteType, bool) {
	switch VoteType(strings.ToLower(strings.TrimSpace(s))) {
	case VoteWag:
		return VoteWag, true
	case VoteGrowl:
		return VoteGrowl, true
	}
	return "", false
}

// CounterField mapea el tipo de voto al contador del perro.
func (t VoteType) CounterField() dogs.CounterField {
	if t == VoteGrowl {
		return dogs.CounterGrowl
	}
	return dogs.CounterWag
}

// Vote es la reacción de un usuario a un perro. Key compuesta
// (user_id, dog_id): a lo sumo un registro por par, last write wins.
type Vote struct {
	UserID string
	DogID  string
	Type   VoteType

	CreatedAt time.Time
	UpdatedAt time.Time
}
