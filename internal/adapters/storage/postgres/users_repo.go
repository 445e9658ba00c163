package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pupper-backend/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			user_id, email, username,
			state_preference, color_preference,
			min_weight_preference, max_weight_preference,
			min_age_preference, max_age_preference,
			is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		u.ID,
		u.Email,
		u.Username,
		u.StatePreference,
		u.ColorPreference,
		toNullFloat(u.MinWeightPreference),
		toNullFloat(u.MaxWeightPreference),
		toNullFloat(u.MinAgePreference),
		toNullFloat(u.MaxAgePreference),
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, email, username,
		       state_preference, color_preference,
		       min_weight_preference, max_weight_preference,
		       min_age_preference, max_age_preference,
		       is_active,
		       created_at, updated_at
		FROM users
		WHERE user_id = $1
	`, id)

	var u users.User
	var minW, maxW, minA, maxA sql.NullFloat64
	if err := row.Scan(
		&u.ID, &u.Email, &u.Username,
		&u.StatePreference, &u.ColorPreference,
		&minW, &maxW, &minA, &maxA,
		&u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}

	u.MinWeightPreference = fromNullFloat(minW)
	u.MaxWeightPreference = fromNullFloat(maxW)
	u.MinAgePreference = fromNullFloat(minA)
	u.MaxAgePreference = fromNullFloat(maxA)
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			state_preference = $2,
			color_preference = $3,
			min_weight_preference = $4,
			max_weight_preference = $5,
			min_age_preference = $6,
			max_age_preference = $7,
			is_active = $8,
			updated_at = $9
		WHERE user_id = $1
	`,
		u.ID,
		u.StatePreference,
		u.ColorPreference,
		toNullFloat(u.MinWeightPreference),
		toNullFloat(u.MaxWeightPreference),
		toNullFloat(u.MinAgePreference),
		toNullFloat(u.MaxAgePreference),
		u.IsActive,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
