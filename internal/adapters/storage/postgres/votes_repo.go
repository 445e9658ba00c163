package postgres

import (
	"context"
	"database/sql"

	"pupper-backend/internal/domain/votes"
)

type VotesRepo struct {
	db *sql.DB
}

func NewVotesRepo(db *sql.DB) *VotesRepo {
	return &VotesRepo{db: db}
}

// Put es un upsert sobre la PK (user_id, dog_id): último voto gana.
func (r *VotesRepo) Put(ctx context.Context, v votes.Vote) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO votes (user_id, dog_id, vote_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, dog_id) DO UPDATE
		SET vote_type = EXCLUDED.vote_type,
		    updated_at = EXCLUDED.updated_at
	`,
		v.UserID,
		v.DogID,
		string(v.Type),
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VotesRepo) Get(ctx context.Context, userID, dogID string) (votes.Vote, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, dog_id, vote_type, created_at, updated_at
		FROM votes
		WHERE user_id = $1 AND dog_id = $2
	`, userID, dogID)

	var v votes.Vote
	if err := row.Scan(&v.UserID, &v.DogID, &v.Type, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return votes.Vote{}, votes.ErrNotFound
		}
		return votes.Vote{}, err
	}
	return v, nil
}
