package images

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestRenderVariants_Dimensions(t *testing.T) {
	// Original apaisado: el fit no recorta, el canvas letterboxea.
	rendered, err := renderVariants(samplePNG(t, 1600, 900))
	require.NoError(t, err)
	require.Len(t, rendered, len(variantSpecs))

	for _, rv := range rendered {
		decoded, err := imaging.Decode(bytes.NewReader(rv.Data))
		require.NoError(t, err, "variant %s", rv.Spec.Name)

		bounds := decoded.Bounds()
		assert.Equal(t, rv.Spec.Width, bounds.Dx(), "variant %s width", rv.Spec.Name)
		assert.Equal(t, rv.Spec.Height, bounds.Dy(), "variant %s height", rv.Spec.Name)
	}
}

func TestRenderVariants_LetterboxIsWhite(t *testing.T) {
	// Imagen muy vertical en un canvas cuadrado: las franjas laterales
	// tienen que ser blancas.
	rendered, err := renderVariants(samplePNG(t, 100, 400))
	require.NoError(t, err)

	var square []byte
	for _, rv := range rendered {
		if rv.Spec.Name == "400x400" {
			square = rv.Data
		}
	}
	require.NotNil(t, square)

	decoded, err := imaging.Decode(bytes.NewReader(square))
	require.NoError(t, err)

	r, g, b, _ := decoded.At(2, 200).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRenderVariants_RejectsGarbage(t *testing.T) {
	_, err := renderVariants([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestVariantSpecExtensions(t *testing.T) {
	for _, spec := range variantSpecs {
		if spec.Format == imaging.JPEG {
			assert.Equal(t, "jpg", spec.ext())
			assert.Equal(t, "image/jpeg", spec.contentType())
		} else {
			assert.Equal(t, "png", spec.ext())
			assert.Equal(t, "image/png", spec.contentType())
		}
	}
}
