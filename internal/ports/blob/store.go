package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

// Store es el puerto de object storage para los bytes de imágenes.
// Las keys son paths tipo "uploads/<id>.png"; la URL pública la decide
// cada adapter.
type Store interface {
	// Put sube el objeto y devuelve su URL pública.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)

	Get(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	// KeyForURL hace el mapeo inverso URL -> key, solo para URLs que
	// pertenecen a este store. Se usa en el cleanup best-effort al borrar
	// un perro (pattern matching sobre las photo URLs guardadas).
	KeyForURL(url string) (string, bool)
}
