package images

import "time"

// ProcessingStatus refleja el avance del pipeline de una imagen. Una
// imagen queda "completed" solo cuando el original y todas las variantes
// están en el blob store y el perro tiene las URLs actualizadas.
type ProcessingStatus string

const (
	StatusPending              ProcessingStatus = "pending"
	StatusProcessing           ProcessingStatus = "processing"
	StatusCompleted            ProcessingStatus = "completed"
	StatusFailed               ProcessingStatus = "failed"
	StatusMetadataUpdateFailed ProcessingStatus = "metadata_update_failed"
)

// Variant es una versión redimensionada del original.
type Variant struct {
	Name   string
	Key    string
	URL    string
	Width  int
	Height int
	Format string
}

type Image struct {
	ID          string
	DogID       string
	Key         string
	URL         string
	ContentType string
	SizeBytes   int64
	Description string
	Tags        []string
	Status      ProcessingStatus
	Error       string
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VariantByName busca una variante por nombre; ok=false si no existe.
func (img Image) VariantByName(name string) (Variant, bool) {
	for _, v := range img.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
