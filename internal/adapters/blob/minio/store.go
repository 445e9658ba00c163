// Package minio implementa el blob store sobre MinIO / S3 compatible.
// Si no hay endpoint configurado el store queda deshabilitado y todas
// las operaciones devuelven ErrDisabled; el caller decide si eso es
// fatal (uploads) o ignorable (cleanup best-effort).
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pupper-backend/internal/ports/blob"
)

var ErrDisabled = errors.New("blob storage not configured")

type Config struct {
	Endpoint        string // ej. "minio:9000" o "localhost:9000"
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	// PublicBaseURL es el prefijo con el que se arman las URLs que ven
	// los clientes, ej. "https://images.pupper.example/pupper-images".
	// Vacío => se deriva del endpoint.
	PublicBaseURL string
}

type Store struct {
	mc      *minio.Client
	bucket  string
	baseURL string
	enabled bool
}

func NewStore(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return &Store{enabled: false}, nil
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &Store{
		mc:      mc,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		enabled: true,
	}, nil
}

func (s *Store) Enabled() bool {
	return s.enabled
}

// EnsureBucket crea el bucket si no existe (idempotente).
func (s *Store) EnsureBucket(ctx context.Context) error {
	if !s.enabled {
		return ErrDisabled
	}
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}
	_, err := s.mc.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	obj, err := s.mc.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, blob.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	return s.mc.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// KeyForURL reconoce solo URLs emitidas por este store (mismo prefijo
// público) y devuelve la key relativa al bucket.
func (s *Store) KeyForURL(url string) (string, bool) {
	if !s.enabled {
		return "", false
	}
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}
