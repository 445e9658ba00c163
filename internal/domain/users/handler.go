package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Post("/", createUserHandler(svc))
		ur.Get("/{userID}", getUserHandler(svc))
		ur.Patch("/{userID}", updateUserHandler(svc))
	})
}

type createUserRequest struct {
	Email               string   `json:"email"`
	Username            string   `json:"username"`
	StatePreference     string   `json:"state_preference"`
	ColorPreference     string   `json:"color_preference"`
	MinWeightPreference *float64 `json:"min_weight_preference"`
	MaxWeightPreference *float64 `json:"max_weight_preference"`
	MinAgePreference    *float64 `json:"min_age_preference"`
	MaxAgePreference    *float64 `json:"max_age_preference"`
}

type updateUserRequest struct {
	StatePreference     *string  `json:"state_preference"`
	ColorPreference     *string  `json:"color_preference"`
	MinWeightPreference *float64 `json:"min_weight_preference"`
	MaxWeightPreference *float64 `json:"max_weight_preference"`
	MinAgePreference    *float64 `json:"min_age_preference"`
	MaxAgePreference    *float64 `json:"max_age_preference"`
	IsActive            *bool    `json:"is_active"`
}

type userResponse struct {
	UserID              string   `json:"user_id"`
	Email               string   `json:"email"`
	Username            string   `json:"username"`
	StatePreference     string   `json:"state_preference,omitempty"`
	ColorPreference     string   `json:"color_preference,omitempty"`
	MinWeightPreference *float64 `json:"min_weight_preference,omitempty"`
	MaxWeightPreference *float64 `json:"max_weight_preference,omitempty"`
	MinAgePreference    *float64 `json:"min_age_preference,omitempty"`
	MaxAgePreference    *float64 `json:"max_age_preference,omitempty"`
	IsActive            bool     `json:"is_active"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json in request body")
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			Email:               req.Email,
			Username:            req.Username,
			StatePreference:     req.StatePreference,
			ColorPreference:     req.ColorPreference,
			MinWeightPreference: req.MinWeightPreference,
			MaxWeightPreference: req.MaxWeightPreference,
			MinAgePreference:    req.MinAgePreference,
			MaxAgePreference:    req.MaxAgePreference,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "email and username are required")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeSuccess(w, http.StatusCreated, "User created successfully", toUserResponse(u))
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeSuccess(w, http.StatusOK, "User retrieved successfully", toUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json in request body")
			return
		}

		u, err := svc.UpdatePreferences(r.Context(), chi.URLParam(r, "userID"), UpdatePreferencesInput{
			StatePreference:     req.StatePreference,
			ColorPreference:     req.ColorPreference,
			MinWeightPreference: req.MinWeightPreference,
			MaxWeightPreference: req.MaxWeightPreference,
			MinAgePreference:    req.MinAgePreference,
			MaxAgePreference:    req.MaxAgePreference,
			IsActive:            req.IsActive,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeSuccess(w, http.StatusOK, "User updated successfully", toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		UserID:              u.ID,
		Email:               u.Email,
		Username:            u.Username,
		StatePreference:     u.StatePreference,
		ColorPreference:     u.ColorPreference,
		MinWeightPreference: u.MinWeightPreference,
		MaxWeightPreference: u.MaxWeightPreference,
		MinAgePreference:    u.MinAgePreference,
		MaxAgePreference:    u.MaxAgePreference,
		IsActive:            u.IsActive,
		CreatedAt:           u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           u.UpdatedAt.UTC().Format(time.RFC3339),
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
