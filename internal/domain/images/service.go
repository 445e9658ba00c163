package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pupper-backend/internal/platform/logger"
	"pupper-backend/internal/ports/blob"
	"pupper-backend/internal/ports/classify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("image not found")
	// ErrNotLabrador: la imagen se clasificó y no pasó la puerta de
	// especie. El original ya fue borrado del blob store.
	ErrNotLabrador = errors.New("image rejected: not a labrador retriever")
)

// Límites sobre el payload decodificado, no el base64. El piso de 1KB
// descarta payloads que no pueden ser una foto real.
const (
	minUploadBytes = 1 << 10
	maxUploadBytes = 50 << 20
)

var allowedContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// DogPhotos es lo mínimo que el pipeline necesita del módulo de perros:
// colgar las URLs de los thumbnails en el registro del perro.
type DogPhotos interface {
	SetPhotoURLs(ctx context.Context, dogID, url400, url50 string) error
}

type Service struct {
	repo       Repository
	blob       blob.Store
	classifier classify.Classifier
	dogs       DogPhotos
	log        logger.Logger
	now        func() time.Time
}

func NewService(repo Repository, store blob.Store, classifier classify.Classifier, dogs DogPhotos, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		blob:       store,
		classifier: classifier,
		dogs:       dogs,
		log:        log,
		now:        time.Now,
	}
}

type UploadInput struct {
	DogID       string
	ContentType string
	Description string
	Tags        []string
	// DataBase64 es el cuerpo de la imagen codificado en base64 estándar.
	DataBase64 string
}

// Upload sube el original, lo pasa por el clasificador (si hay uno
// configurado), genera las variantes y actualiza las URLs del perro.
// La asociación a un perro es opcional: sin dog_id la imagen queda como
// registro suelto y no se toca ningún perro.
// El redimensionado corre en línea con la petición; un fallo parcial
// deja el registro en "failed" o "metadata_update_failed" pero conserva
// el original.
func (s *Service) Upload(ctx context.Context, in UploadInput) (Image, error) {
	dogID := strings.TrimSpace(in.DogID)

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return Image{}, fmt.Errorf("%w: unsupported content type %q", ErrInvalidInput, in.ContentType)
	}

	raw, err := base64.StdEncoding.DecodeString(in.DataBase64)
	if err != nil {
		return Image{}, fmt.Errorf("%w: image data is not valid base64", ErrInvalidInput)
	}
	if len(raw) < minUploadBytes {
		return Image{}, fmt.Errorf("%w: image too small (minimum 1KB)", ErrInvalidInput)
	}
	if len(raw) > maxUploadBytes {
		return Image{}, fmt.Errorf("%w: image exceeds 50MB limit", ErrInvalidInput)
	}

	id := uuid.NewString()
	key := fmt.Sprintf("uploads/%s.%s", id, ext)

	url, err := s.blob.Put(ctx, key, bytes.NewReader(raw), int64(len(raw)), contentType)
	if err != nil {
		return Image{}, fmt.Errorf("store original: %w", err)
	}

	if s.classifier != nil {
		result, err := s.classifier.Classify(ctx, key)
		if err != nil {
			// Clasificador caído: no bloqueamos la subida.
			s.log.Warn("image classification failed, accepting upload", map[string]any{
				"image_id": id,
				"error":    err.Error(),
			})
		} else if !result.IsLabrador {
			s.deleteBlobQuiet(ctx, key, id)
			return Image{}, ErrNotLabrador
		}
	}

	now := s.now().UTC()
	img := Image{
		ID:          id,
		DogID:       dogID,
		Key:         key,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   int64(len(raw)),
		Description: strings.TrimSpace(in.Description),
		Tags:        in.Tags,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return Image{}, err
	}

	img = s.process(ctx, img, raw)
	return img, nil
}

// process genera y sube las variantes, y luego actualiza al perro. Los
// cambios de estado se persisten siempre, incluso en fallo.
func (s *Service) process(ctx context.Context, img Image, raw []byte) Image {
	img = s.markStatus(ctx, img, StatusProcessing, "")

	rendered, err := renderVariants(raw)
	if err != nil {
		return s.markStatus(ctx, img, StatusFailed, err.Error())
	}

	variants := make([]Variant, 0, len(rendered))
	for _, rv := range rendered {
		vkey := fmt.Sprintf("resized/%s/%s.%s", img.ID, rv.Spec.Name, rv.Spec.ext())
		vurl, err := s.blob.Put(ctx, vkey, bytes.NewReader(rv.Data), int64(len(rv.Data)), rv.Spec.contentType())
		if err != nil {
			return s.markStatus(ctx, img, StatusFailed, fmt.Sprintf("store variant %s: %v", rv.Spec.Name, err))
		}
		variants = append(variants, Variant{
			Name:   rv.Spec.Name,
			Key:    vkey,
			URL:    vurl,
			Width:  rv.Spec.Width,
			Height: rv.Spec.Height,
			Format: rv.Spec.ext(),
		})
	}
	img.Variants = variants

	// Solo con asociación: las imágenes sueltas no actualizan a nadie.
	if img.DogID != "" {
		v400, _ := img.VariantByName("400x400")
		v50, _ := img.VariantByName("50x50")
		if err := s.dogs.SetPhotoURLs(ctx, img.DogID, v400.URL, v50.URL); err != nil {
			s.log.Warn("failed to update dog photo urls", map[string]any{
				"image_id": img.ID,
				"dog_id":   img.DogID,
				"error":    err.Error(),
			})
			return s.markStatus(ctx, img, StatusMetadataUpdateFailed, err.Error())
		}
	}

	return s.markStatus(ctx, img, StatusCompleted, "")
}

func (s *Service) markStatus(ctx context.Context, img Image, status ProcessingStatus, errMsg string) Image {
	img.Status = status
	img.Error = errMsg
	img.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, img); err != nil {
		s.log.Error("failed to persist image status", map[string]any{
			"image_id": img.ID,
			"status":   string(status),
			"error":    err.Error(),
		})
	}
	return img
}

func (s *Service) deleteBlobQuiet(ctx context.Context, key, imageID string) {
	if err := s.blob.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete rejected image", map[string]any{
			"image_id": imageID,
			"key":      key,
			"error":    err.Error(),
		})
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Image, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}
