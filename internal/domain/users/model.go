package users

import "time"

// User es un adoptante con sus preferencias de matching. Las preferencias
// son opcionales (punteros/strings vacíos) y usan las mismas
// normalizaciones que los campos del perro: estado en mayúsculas, color
// en minúsculas.
type User struct {
	ID       string
	Email    string
	Username string

	StatePreference     string
	ColorPreference     string
	MinWeightPreference *float64
	MaxWeightPreference *float64
	MinAgePreference    *float64
	MaxAgePreference    *float64

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
