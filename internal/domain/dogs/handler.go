package dogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Post("/", createDogHandler(svc))
		dr.Get("/", listDogsHandler(svc))
		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Put("/{dogID}", updateDogHandler(svc))
		dr.Patch("/{dogID}", updateDogHandler(svc))
		dr.Delete("/{dogID}", deleteDogHandler(svc))
	})
}

// createDogRequest es el body de POST /dogs, con los nombres de wire.
type createDogRequest struct {
	ShelterName string   `json:"shelter_name"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	DogName     string   `json:"dog_name"`
	DogSpecies  string   `json:"dog_species"`
	EntryDate   string   `json:"shelter_entry_date"`
	Description string   `json:"dog_description"`
	DogBirthday string   `json:"dog_birthday"`
	DogWeight   *float64 `json:"dog_weight"`
	DogColor    string   `json:"dog_color"`
	DogPhotoURL string   `json:"dog_photo_url"`
	ShelterID   string   `json:"shelter_id"`
	Tags        []string `json:"tags"`
}

// updateDogRequest: punteros para update parcial real (nil = no tocar).
type updateDogRequest struct {
	ShelterName *string   `json:"shelter_name"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	DogName     *string   `json:"dog_name"`
	DogSpecies  *string   `json:"dog_species"`
	EntryDate   *string   `json:"shelter_entry_date"`
	Description *string   `json:"dog_description"`
	DogBirthday *string   `json:"dog_birthday"`
	DogWeight   *float64  `json:"dog_weight"`
	DogColor    *string   `json:"dog_color"`
	DogPhotoURL *string   `json:"dog_photo_url"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
}

type dogResponse struct {
	DogID       string   `json:"dog_id"`
	ShelterID   string   `json:"shelter_id,omitempty"`
	ShelterName string   `json:"shelter_name"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	DogName     string   `json:"dog_name"`
	DogSpecies  string   `json:"dog_species"`
	EntryDate   string   `json:"shelter_entry_date"`
	Description string   `json:"dog_description"`
	DogBirthday string   `json:"dog_birthday"`
	DogWeight   *float64 `json:"dog_weight"`
	DogColor    string   `json:"dog_color"`
	DogAgeYears *float64 `json:"dog_age_years"`
	PhotoURL    string   `json:"dog_photo_url,omitempty"`
	Photo400URL string   `json:"dog_photo_400x400_url,omitempty"`
	Photo50URL  string   `json:"dog_photo_50x50_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsLabrador  bool     `json:"is_labrador"`
	WagCount    int      `json:"wag_count"`
	GrowlCount  int      `json:"growl_count"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type listDogsResponse struct {
	Dogs           []dogResponse     `json:"dogs"`
	Pagination     Pagination        `json:"pagination"`
	FiltersApplied map[string]string `json:"filters_applied"`
	Sort           SortSpec          `json:"sort"`
}

func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json in request body")
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			ShelterName: req.ShelterName,
			City:        req.City,
			State:       req.State,
			DogName:     req.DogName,
			Species:     req.DogSpecies,
			EntryDate:   req.EntryDate,
			Description: req.Description,
			Birthday:    req.DogBirthday,
			Weight:      req.DogWeight,
			Color:       req.DogColor,
			PhotoURL:    req.DogPhotoURL,
			ShelterID:   req.ShelterID,
			Tags:        req.Tags,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeSuccess(w, http.StatusCreated, "Dog successfully added to the system", toDogResponse(d))
	}
}

func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Query params crudos; el motor decide qué es filtro y qué no.
		params := map[string]string{}
		for k, vs := range r.URL.Query() {
			if len(vs) > 0 {
				params[k] = vs[0]
			}
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]dogResponse, 0, len(result.Dogs))
		for _, d := range result.Dogs {
			out = append(out, toDogResponse(d))
		}

		writeSuccess(w, http.StatusOK, "Dogs retrieved successfully", listDogsResponse{
			Dogs:           out,
			Pagination:     result.Pagination,
			FiltersApplied: result.FiltersApplied,
			Sort:           result.Sort,
		})
	}
}

func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Dog not found")
			return
		}
		writeSuccess(w, http.StatusOK, "Dog retrieved successfully", toDogResponse(d))
	}
}

func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json in request body")
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "dogID"), UpdateInput{
			ShelterName: req.ShelterName,
			City:        req.City,
			State:       req.State,
			DogName:     req.DogName,
			Species:     req.DogSpecies,
			EntryDate:   req.EntryDate,
			Description: req.Description,
			Birthday:    req.DogBirthday,
			Weight:      req.DogWeight,
			Color:       req.DogColor,
			PhotoURL:    req.DogPhotoURL,
			Status:      req.Status,
			Tags:        req.Tags,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "Dog not found")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, "Dog updated successfully", toDogResponse(d))
	}
}

func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Delete(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "Dog not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeSuccess(w, http.StatusOK, "Dog successfully deleted from the system", map[string]any{
			"dog_id":     result.DogID,
			"dog_name":   result.DogName,
			"deleted_at": result.DeletedAt.Format(time.RFC3339),
		})
	}
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		DogID:       d.ID,
		ShelterID:   d.ShelterID,
		ShelterName: d.ShelterName,
		City:        d.City,
		State:       d.State,
		DogName:     d.Name,
		DogSpecies:  d.Species,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		DogBirthday: d.Birthday,
		DogWeight:   d.Weight,
		DogColor:    d.Color,
		DogAgeYears: d.AgeYears,
		PhotoURL:    d.PhotoURL,
		Photo400URL: d.Photo400URL,
		Photo50URL:  d.Photo50URL,
		Tags:        d.Tags,
		IsLabrador:  d.IsLabrador,
		WagCount:    d.WagCount,
		GrowlCount:  d.GrowlCount,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Envelope {success, message, data} del contrato original.
// writeSuccess/writeError se duplican adrede en los handlers de cada módulo
// para no crear helpers compartidos demasiado pronto.
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
