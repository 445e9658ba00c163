package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pupper-backend/internal/domain/images"
)

type ImagesRepo struct {
	db *sql.DB
}

func NewImagesRepo(db *sql.DB) *ImagesRepo {
	return &ImagesRepo{db: db}
}

func (r *ImagesRepo) Create(ctx context.Context, img images.Image) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO images (
			image_id, dog_id,
			object_key, url, content_type, size_bytes,
			description, tags,
			status, error, variants,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		img.ID,
		img.DogID,
		img.Key,
		img.URL,
		img.ContentType,
		img.SizeBytes,
		img.Description,
		toJSONStrings(img.Tags),
		string(img.Status),
		img.Error,
		toJSONVariants(img.Variants),
		img.CreatedAt,
		img.UpdatedAt,
	)
	return err
}

func (r *ImagesRepo) GetByID(ctx context.Context, id string) (images.Image, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return images.Image{}, images.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT image_id, dog_id,
		       object_key, url, content_type, size_bytes,
		       description, tags,
		       status, error, variants,
		       created_at, updated_at
		FROM images
		WHERE image_id = $1
	`, id)

	var img images.Image
	var tags, variants []byte
	if err := row.Scan(
		&img.ID, &img.DogID,
		&img.Key, &img.URL, &img.ContentType, &img.SizeBytes,
		&img.Description, &tags,
		&img.Status, &img.Error, &variants,
		&img.CreatedAt, &img.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return images.Image{}, images.ErrNotFound
		}
		return images.Image{}, err
	}

	if len(tags) > 0 {
		_ = json.Unmarshal(tags, &img.Tags)
	}
	if len(variants) > 0 {
		_ = json.Unmarshal(variants, &img.Variants)
	}
	return img, nil
}

func (r *ImagesRepo) Update(ctx context.Context, img images.Image) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE images
		SET
			status = $2,
			error = $3,
			variants = $4,
			updated_at = $5
		WHERE image_id = $1
	`,
		img.ID,
		string(img.Status),
		img.Error,
		toJSONVariants(img.Variants),
		img.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return images.ErrNotFound
	}
	return nil
}

func toJSONVariants(vs []images.Variant) []byte {
	if vs == nil {
		vs = []images.Variant{}
	}
	b, _ := json.Marshal(vs)
	return b
}

func toJSONStrings(ss []string) []byte {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return b
}
