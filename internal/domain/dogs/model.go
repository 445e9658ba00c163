package dogs

import (
	"math"
	"strings"
	"time"
)

// Status define el ciclo de vida de un listing.
// El core no fuerza transiciones; es un string enum plano.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
	StatusPending   Status = "pending"
	StatusDeleted   Status = "deleted"
)

// DateLayout es el formato textual de fechas de calendario (MM/DD/YYYY)
// que usan shelter_entry_date y dog_birthday. Es parte del contrato de wire.
const DateLayout = "01/02/2006"

// Dog representa un perro en adopción.
//
// Name solo vive en memoria para display: lo que se persiste es
// NameEncrypted (token del namecodec). State va en mayúsculas y Color en
// minúsculas, normalizados al escribir.
type Dog struct {
	ID        string
	ShelterID string

	ShelterName string
	City        string
	State       string

	Name          string // decodificado, nunca persistido en claro
	NameEncrypted string

	Species     string
	Description string
	Color       string

	EntryDate string // MM/DD/YYYY
	Birthday  string // MM/DD/YYYY

	Weight   *float64
	AgeYears *float64 // snapshot fraccionario calculado al escribir

	PhotoURL    string
	Photo400URL string
	Photo50URL  string

	Tags []string

	IsLabrador bool
	WagCount   int
	GrowlCount int

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseDate parsea una fecha MM/DD/YYYY del wire.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AgeYearsAt es el cálculo de edad de escritura: años fraccionarios
// (días/365.25) redondeados a un decimal. Se guarda como snapshot en
// dog_age_years; no se recalcula en reads.
func AgeYearsAt(birthday string, now time.Time) (float64, bool) {
	bd, ok := ParseDate(birthday)
	if !ok {
		return 0, false
	}
	years := now.Sub(bd).Hours() / 24 / 365.25
	return math.Round(years*10) / 10, true
}

// WholeYearsAt es el cálculo de edad de lectura: años enteros con la regla
// "¿ya cumplió años este año?". Es el fallback de los filtros de edad cuando
// el snapshot dog_age_years falta. A propósito NO coincide exactamente con
// AgeYearsAt; son dos operaciones distintas.
func WholeYearsAt(birthday string, now time.Time) (int, bool) {
	bd, ok := ParseDate(birthday)
	if !ok {
		return 0, false
	}
	years := now.Year() - bd.Year()
	if now.Month() < bd.Month() || (now.Month() == bd.Month() && now.Day() < bd.Day()) {
		years--
	}
	return years, true
}

// SpeciesIsLabrador chequea el invariante de especie: containment
// case-insensitive de "labrador retriever" (así "Labrador Retriever Mix"
// también pasa).
func SpeciesIsLabrador(species string) bool {
	return strings.Contains(strings.ToLower(species), "labrador retriever")
}
