package votes

import "context"

type Repository interface {
	// Put crea o pisa el voto del par (user_id, dog_id).
	Put(ctx context.Context, v Vote) error

	Get(ctx context.Context, userID, dogID string) (Vote, error)
}
