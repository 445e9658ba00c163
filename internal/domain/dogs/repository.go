package dogs

import "context"

// CounterField nombra los contadores de engagement incrementables.
type CounterField string

const (
	CounterWag   CounterField = "wag_count"
	CounterGrowl CounterField = "growl_count"
)

type Repository interface {
	Create(ctx context.Context, d Dog) error
	GetByID(ctx context.Context, id string) (Dog, error)
	Update(ctx context.Context, d Dog) error
	Delete(ctx context.Context, id string) error

	// Scan devuelve la colección completa. El listado filtra/ordena/pagina
	// en memoria sobre este snapshot: full scan asumido y aceptado para
	// colecciones chicas/medianas.
	Scan(ctx context.Context) ([]Dog, error)

	// IncrementCounter suma delta al contador indicado y toca updated_at.
	// Debe ser atómico en el storage (no read-modify-write del caller):
	// los votos concurrentes al mismo perro compiten acá.
	IncrementCounter(ctx context.Context, id string, field CounterField, delta int) error
}
