package images_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blobmem "pupper-backend/internal/adapters/blob/memory"
	mem "pupper-backend/internal/adapters/storage/memory"
	"pupper-backend/internal/domain/dogs"
	"pupper-backend/internal/domain/images"
	"pupper-backend/internal/ports/classify"
)

func samplePNGBase64(t *testing.T) string {
	t.Helper()
	// Pixeles variados para que el PNG no comprima por debajo del piso
	// de tamaño del upload.
	img := imaging.New(640, 480, color.NRGBA{A: 255})
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 31)
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

type fixture struct {
	svc     *images.Service
	dogsSvc *dogs.Service
	store   *blobmem.Store
	dogID   string
}

func newFixture(t *testing.T, classifier classify.Classifier) fixture {
	t.Helper()

	store := blobmem.NewStore()
	dogsSvc := dogs.NewService(mem.NewDogRepository(), store, nil)

	w := 30.0
	d, err := dogsSvc.Create(context.Background(), dogs.CreateInput{
		ShelterName: "Happy Tails",
		City:        "Seattle",
		State:       "WA",
		DogName:     "Luna",
		Species:     "Labrador Retriever",
		EntryDate:   "03/10/2024",
		Description: "Sweet",
		Birthday:    "01/15/2021",
		Weight:      &w,
		Color:       "yellow",
	})
	require.NoError(t, err)

	svc := images.NewService(mem.NewImageRepository(), store, classifier, dogsSvc, nil)
	return fixture{svc: svc, dogsSvc: dogsSvc, store: store, dogID: d.ID}
}

func TestUpload_CompletesPipelineAndSetsDogURLs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	img, err := f.svc.Upload(ctx, images.UploadInput{
		DogID:       f.dogID,
		ContentType: "image/png",
		DataBase64:  samplePNGBase64(t),
	})
	require.NoError(t, err)

	assert.Equal(t, images.StatusCompleted, img.Status)
	assert.Len(t, img.Variants, 4)

	v400, ok := img.VariantByName("400x400")
	require.True(t, ok)
	v50, ok := img.VariantByName("50x50")
	require.True(t, ok)

	d, err := f.dogsSvc.GetByID(ctx, f.dogID)
	require.NoError(t, err)
	assert.Equal(t, v400.URL, d.Photo400URL)
	assert.Equal(t, v50.URL, d.Photo50URL)

	// original + 4 variantes en el blob store
	assert.Equal(t, 5, f.store.Len())

	// Y el estado persiste para el GET.
	got, err := f.svc.GetByID(ctx, img.ID)
	require.NoError(t, err)
	assert.Equal(t, images.StatusCompleted, got.Status)
}

func TestUpload_WithoutDogIDIsUnassociated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	img, err := f.svc.Upload(ctx, images.UploadInput{
		ContentType: "image/png",
		DataBase64:  samplePNGBase64(t),
	})
	require.NoError(t, err)
	assert.Empty(t, img.DogID)
	assert.Equal(t, images.StatusCompleted, img.Status)
	assert.Len(t, img.Variants, 4)

	// El perro de la fixture queda intacto: sin asociación no se toca.
	d, err := f.dogsSvc.GetByID(ctx, f.dogID)
	require.NoError(t, err)
	assert.Empty(t, d.Photo400URL)
	assert.Empty(t, d.Photo50URL)
}

func TestUpload_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.Upload(ctx, images.UploadInput{
		DogID:       f.dogID,
		ContentType: "application/pdf",
		DataBase64:  samplePNGBase64(t),
	})
	assert.ErrorIs(t, err, images.ErrInvalidInput)

	_, err = f.svc.Upload(ctx, images.UploadInput{
		DogID:       f.dogID,
		ContentType: "image/png",
		DataBase64:  "%%%not-base64%%%",
	})
	assert.ErrorIs(t, err, images.ErrInvalidInput)

	// Menos de 1KB decodificado no puede ser una foto real.
	_, err = f.svc.Upload(ctx, images.UploadInput{
		DogID:       f.dogID,
		ContentType: "image/png",
		DataBase64:  base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 512)),
	})
	assert.ErrorIs(t, err, images.ErrInvalidInput)
}

func TestUpload_CorruptImageEndsFailed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	img, err := f.svc.Upload(ctx, images.UploadInput{
		DogID:       f.dogID,
		ContentType: "image/png",
		DataBase64:  base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("corrupt bytes "), 128)),
	})
	require.NoError(t, err)
	assert.Equal(t, images.StatusFailed, img.Status)
	assert.NotEmpty(t, img.Error)

	// El original queda en el blob store igual.
	assert.Equal(t, 1, f.store.Len())
}

type stubClassifier struct {
	result classify.Result
	err    error
}

func (s stubClassifier) Classify(context.Context, string) (classify.Result, error) {
	return s.result, s.err
}

func TestUpload_ClassifierRejectsNonLabrador(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, stubClassifier{result: classify.Result{IsDog: true, IsLabrador: false}})

	_, err := f.svc.Upload(ctx, images.UploadInput{
		DogID:       f.dogID,
		ContentType: "image/png",
		DataBase64:  samplePNGBase64(t),
	})
	assert.ErrorIs(t, err, images.ErrNotLabrador)

	// El original rechazado se borra.
	assert.Equal(t, 0, f.store.Len())
}

func TestUpload_ClassifierErrorIsFailOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, stubClassifier{err: errors.New("service unavailable")})

	img, err := f.svc.Upload(ctx, images.UploadInput{
		DogID:       f.dogID,
		ContentType: "image/png",
		DataBase64:  samplePNGBase64(t),
	})
	require.NoError(t, err)
	assert.Equal(t, images.StatusCompleted, img.Status)
}
