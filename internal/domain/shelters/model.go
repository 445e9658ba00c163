package shelters

import "time"

// Shelter es un refugio que publica perros en adopción.
type Shelter struct {
	ID    string
	Name  string
	City  string
	State string // mayúsculas, normalizado al escribir

	ContactEmail string
	ContactPhone string

	IsActive  bool
	DogsCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}
