package images

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/images", func(ir chi.Router) {
		ir.Post("/", uploadImageHandler(svc))
		ir.Get("/{imageID}", getImageHandler(svc))
	})
}

type uploadImageRequest struct {
	DogID       string   `json:"dog_id"`
	ContentType string   `json:"content_type"`
	ImageData   string   `json:"image_data"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type variantResponse struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

type imageResponse struct {
	ImageID     string            `json:"image_id"`
	DogID       string            `json:"dog_id"`
	URL         string            `json:"url"`
	ContentType string            `json:"content_type"`
	SizeBytes   int64             `json:"size_bytes"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Status      string            `json:"status"`
	Error       string            `json:"error,omitempty"`
	Variants    []variantResponse `json:"variants,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

func uploadImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json in request body")
			return
		}

		img, err := svc.Upload(r.Context(), UploadInput{
			DogID:       req.DogID,
			ContentType: req.ContentType,
			Description: req.Description,
			Tags:        req.Tags,
			DataBase64:  req.ImageData,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrNotLabrador):
				writeError(w, http.StatusUnprocessableEntity, "Image rejected: could not verify a Labrador Retriever in the photo")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, http.StatusCreated, "Image uploaded successfully", toImageResponse(img))
	}
}

func getImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, err := svc.GetByID(r.Context(), chi.URLParam(r, "imageID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Image not found")
			return
		}
		writeSuccess(w, http.StatusOK, "Image retrieved successfully", toImageResponse(img))
	}
}

func toImageResponse(img Image) imageResponse {
	variants := make([]variantResponse, 0, len(img.Variants))
	for _, v := range img.Variants {
		variants = append(variants, variantResponse{
			Name:   v.Name,
			URL:    v.URL,
			Width:  v.Width,
			Height: v.Height,
			Format: v.Format,
		})
	}
	return imageResponse{
		ImageID:     img.ID,
		DogID:       img.DogID,
		URL:         img.URL,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		Description: img.Description,
		Tags:        img.Tags,
		Status:      string(img.Status),
		Error:       img.Error,
		Variants:    variants,
		CreatedAt:   img.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   img.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}
