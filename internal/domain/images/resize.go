package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// variantSpec define el tamaño y formato de salida de cada variante.
// Los PNG son los thumbnails cuadrados que consume el listado; los JPEG
// son las versiones web con letterbox blanco.
type variantSpec struct {
	Name    string
	Width   int
	Height  int
	Format  imaging.Format
	Quality int // solo JPEG
}

var variantSpecs = []variantSpec{
	{Name: "400x400", Width: 400, Height: 400, Format: imaging.PNG},
	{Name: "50x50", Width: 50, Height: 50, Format: imaging.PNG},
	{Name: "800x600", Width: 800, Height: 600, Format: imaging.JPEG, Quality: 85},
	{Name: "200x150", Width: 200, Height: 150, Format: imaging.JPEG, Quality: 85},
}

type renderedVariant struct {
	Spec variantSpec
	Data []byte
}

// renderVariants decodifica el original (respetando la orientación EXIF)
// y produce todas las variantes. Cada variante se ajusta dentro del
// lienzo destino sin recortar, centrada sobre fondo blanco.
func renderVariants(original []byte) ([]renderedVariant, error) {
	src, err := imaging.Decode(bytes.NewReader(original), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	out := make([]renderedVariant, 0, len(variantSpecs))
	for _, spec := range variantSpecs {
		data, err := renderVariant(src, spec)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", spec.Name, err)
		}
		out = append(out, renderedVariant{Spec: spec, Data: data})
	}
	return out, nil
}

func renderVariant(src image.Image, spec variantSpec) ([]byte, error) {
	fitted := imaging.Fit(src, spec.Width, spec.Height, imaging.Lanczos)
	canvas := imaging.New(spec.Width, spec.Height, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	composed := imaging.PasteCenter(canvas, fitted)

	var buf bytes.Buffer
	var opts []imaging.EncodeOption
	if spec.Format == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(spec.Quality))
	}
	if err := imaging.Encode(&buf, composed, spec.Format, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s variantSpec) ext() string {
	if s.Format == imaging.JPEG {
		return "jpg"
	}
	return "png"
}

func (s variantSpec) contentType() string {
	if s.Format == imaging.JPEG {
		return "image/jpeg"
	}
	return "image/png"
}
