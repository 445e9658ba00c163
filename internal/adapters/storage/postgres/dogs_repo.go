package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pupper-backend/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

const dogColumns = `
	dog_id, shelter_id,
	shelter_name, city, state,
	dog_name_encrypted,
	dog_species, dog_description, dog_color,
	shelter_entry_date, dog_birthday,
	dog_weight, dog_age_years,
	dog_photo_url, dog_photo_400x400_url, dog_photo_50x50_url,
	tags,
	is_labrador, wag_count, growl_count,
	status,
	created_at, updated_at`

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (`+dogColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
	`,
		d.ID,
		d.ShelterID,
		d.ShelterName,
		d.City,
		d.State,
		d.NameEncrypted,
		d.Species,
		d.Description,
		d.Color,
		d.EntryDate,
		d.Birthday,
		toNullFloat(d.Weight),
		toNullFloat(d.AgeYears),
		d.PhotoURL,
		d.Photo400URL,
		d.Photo50URL,
		toJSONTags(d.Tags),
		d.IsLabrador,
		d.WagCount,
		d.GrowlCount,
		string(d.Status),
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET
			shelter_id = $2,
			shelter_name = $3,
			city = $4,
			state = $5,
			dog_name_encrypted = $6,
			dog_species = $7,
			dog_description = $8,
			dog_color = $9,
			shelter_entry_date = $10,
			dog_birthday = $11,
			dog_weight = $12,
			dog_age_years = $13,
			dog_photo_url = $14,
			dog_photo_400x400_url = $15,
			dog_photo_50x50_url = $16,
			tags = $17,
			is_labrador = $18,
			status = $19,
			updated_at = $20
		WHERE dog_id = $1
	`,
		d.ID,
		d.ShelterID,
		d.ShelterName,
		d.City,
		d.State,
		d.NameEncrypted,
		d.Species,
		d.Description,
		d.Color,
		d.EntryDate,
		d.Birthday,
		toNullFloat(d.Weight),
		toNullFloat(d.AgeYears),
		d.PhotoURL,
		d.Photo400URL,
		d.Photo50URL,
		toJSONTags(d.Tags),
		d.IsLabrador,
		string(d.Status),
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+dogColumns+`
		FROM dogs
		WHERE dog_id = $1
	`, id)

	d, err := scanDog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}
	return d, nil
}

func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE dog_id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) Scan(ctx context.Context) ([]dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+dogColumns+`
		FROM dogs
		ORDER BY dog_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// IncrementCounter hace el incremento en un solo UPDATE para que los
// votos concurrentes no se pisen. El campo viene de un enum propio, no
// del wire, pero igual se valida contra la whitelist antes de
// interpolarlo en el SQL.
func (r *DogsRepo) IncrementCounter(ctx context.Context, id string, field dogs.CounterField, delta int) error {
	var column string
	switch field {
	case dogs.CounterWag:
		column = "wag_count"
	case dogs.CounterGrowl:
		column = "growl_count"
	default:
		return fmt.Errorf("%w: unknown counter field %q", dogs.ErrInvalidInput, field)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET `+column+` = `+column+` + $2, updated_at = $3
		WHERE dog_id = $1
	`, id, delta, time.Now().UTC())
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDog(row rowScanner) (dogs.Dog, error) {
	var d dogs.Dog
	var weight, age sql.NullFloat64
	var tags []byte

	if err := row.Scan(
		&d.ID,
		&d.ShelterID,
		&d.ShelterName,
		&d.City,
		&d.State,
		&d.NameEncrypted,
		&d.Species,
		&d.Description,
		&d.Color,
		&d.EntryDate,
		&d.Birthday,
		&weight,
		&age,
		&d.PhotoURL,
		&d.Photo400URL,
		&d.Photo50URL,
		&tags,
		&d.IsLabrador,
		&d.WagCount,
		&d.GrowlCount,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}

	if weight.Valid {
		w := weight.Float64
		d.Weight = &w
	}
	if age.Valid {
		a := age.Float64
		d.AgeYears = &a
	}
	if len(tags) > 0 {
		// tags es jsonb; un null/invalid deja el slice vacío
		_ = json.Unmarshal(tags, &d.Tags)
	}
	return d, nil
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func toJSONTags(tags []string) []byte {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return b
}
