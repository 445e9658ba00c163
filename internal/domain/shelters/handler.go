package shelters

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/shelters", func(sr chi.Router) {
		sr.Post("/", createShelterHandler(svc))
		sr.Get("/", listSheltersHandler(svc))
		sr.Get("/{shelterID}", getShelterHandler(svc))
	})
}

type createShelterRequest struct {
	ShelterName  string `json:"shelter_name"`
	City         string `json:"city"`
	State        string `json:"state"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

type shelterResponse struct {
	ShelterID    string `json:"shelter_id"`
	ShelterName  string `json:"shelter_name"`
	City         string `json:"city"`
	State        string `json:"state"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	IsActive     bool   `json:"is_active"`
	DogsCount    int    `json:"dogs_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func createShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createShelterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json in request body")
			return
		}

		sh, err := svc.Create(r.Context(), CreateInput{
			Name:         req.ShelterName,
			City:         req.City,
			State:        req.State,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "shelter_name and contact_email are required")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeSuccess(w, http.StatusCreated, "Shelter created successfully", toShelterResponse(sh))
	}
}

func listSheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]shelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toShelterResponse(sh))
		}
		writeSuccess(w, http.StatusOK, "Shelters retrieved successfully", out)
	}
}

func getShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Shelter not found")
			return
		}
		writeSuccess(w, http.StatusOK, "Shelter retrieved successfully", toShelterResponse(sh))
	}
}

func toShelterResponse(sh Shelter) shelterResponse {
	return shelterResponse{
		ShelterID:    sh.ID,
		ShelterName:  sh.Name,
		City:         sh.City,
		State:        sh.State,
		ContactEmail: sh.ContactEmail,
		ContactPhone: sh.ContactPhone,
		IsActive:     sh.IsActive,
		DogsCount:    sh.DogsCount,
		CreatedAt:    sh.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    sh.UpdatedAt.UTC().Format(time.RFC3339),
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
