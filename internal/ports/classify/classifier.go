package classify

import "context"

// Label es una etiqueta detectada con su score (0-100).
type Label struct {
	Name       string
	Confidence float64
}

// Result resume la clasificación de una imagen subida.
type Result struct {
	IsDog      bool
	IsLabrador bool
	Confidence float64 // score máximo entre labels de labrador
	Labels     []Label
}

// Classifier detecta contenido en una imagen ya subida al blob store
// (referenciada por key). El servicio es opcional y poco confiable:
// classifier nil == aceptar todo, y un error de clasificación nunca
// debe rechazar el upload.
type Classifier interface {
	Classify(ctx context.Context, key string) (Result, error)
}
