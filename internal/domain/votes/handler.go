package votes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pupper-backend/internal/domain/dogs"
	"pupper-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/dogs/{dogID}/vote", castVoteHandler(svc))
}

type castVoteRequest struct {
	UserID   string `json:"user_id"`
	VoteType string `json:"vote_type"`
}

func castVoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req castVoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json in request body")
			return
		}

		// user_id del body, con fallback a la identidad del request.
		userID := strings.TrimSpace(req.UserID)
		if userID == "" {
			userID, _ = middleware.GetUserID(r.Context())
		}
		if userID == "" {
			writeError(w, http.StatusBadRequest, "User ID is required")
			return
		}

		voteType, ok := ParseVoteType(req.VoteType)
		if !ok {
			writeError(w, http.StatusBadRequest, "Valid vote type (wag or growl) is required")
			return
		}

		v, err := svc.Cast(r.Context(), chi.URLParam(r, "dogID"), userID, voteType)
		if err != nil {
			switch {
			case errors.Is(err, dogs.ErrNotFound):
				writeError(w, http.StatusNotFound, "Dog not found")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "Error recording vote")
			}
			return
		}

		writeSuccess(w, http.StatusOK, "Successfully recorded "+string(v.Type)+" for dog", map[string]any{
			"dog_id":    v.DogID,
			"user_id":   v.UserID,
			"vote_type": string(v.Type),
			"timestamp": v.CreatedAt.Format(time.RFC3339),
		})
	}
}

// Duplicado adrede (ver nota en dogs/handler.go).
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
