package dogs_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blobmem "pupper-backend/internal/adapters/blob/memory"
	mem "pupper-backend/internal/adapters/storage/memory"
	"pupper-backend/internal/domain/dogs"
)

func validCreateInput() dogs.CreateInput {
	w := 32.5
	return dogs.CreateInput{
		ShelterName: "Happy Tails",
		City:        "Seattle",
		State:       "wa",
		DogName:     "Luna",
		Species:     "Labrador Retriever",
		EntryDate:   "03/10/2024",
		Description: "Sweet and playful",
		Birthday:    "01/15/2021",
		Weight:      &w,
		Color:       "Chocolate",
	}
}

func TestCreate_NormalizesAndDerives(t *testing.T) {
	repo := mem.NewDogRepository()
	svc := dogs.NewService(repo, nil, nil)

	d, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "WA", d.State)
	assert.Equal(t, "chocolate", d.Color)
	assert.True(t, d.IsLabrador)
	assert.Equal(t, dogs.StatusAvailable, d.Status)
	require.NotNil(t, d.AgeYears)
	assert.Greater(t, *d.AgeYears, 0.0)

	// El nombre plano nunca llega al repo: solo el token.
	stored, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Name)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("Luna")), stored.NameEncrypted)

	// GetByID lo devuelve decodificado.
	got, err := svc.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luna", got.Name)
}

func TestCreate_RequiredFields(t *testing.T) {
	svc := dogs.NewService(mem.NewDogRepository(), nil, nil)

	in := validCreateInput()
	in.City = ""
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, dogs.ErrInvalidInput)

	in = validCreateInput()
	in.Weight = nil
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, dogs.ErrInvalidInput)

	in = validCreateInput()
	neg := -1.0
	in.Weight = &neg
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, dogs.ErrInvalidInput)
}

func TestCreate_RejectsNonLabrador(t *testing.T) {
	svc := dogs.NewService(mem.NewDogRepository(), nil, nil)

	in := validCreateInput()
	in.Species = "Poodle"
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, dogs.ErrInvalidInput)

	// El gate es por containment: los mixes pasan.
	in = validCreateInput()
	in.Species = "Labrador Retriever Mix"
	_, err = svc.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreate_RejectsBadDates(t *testing.T) {
	svc := dogs.NewService(mem.NewDogRepository(), nil, nil)

	in := validCreateInput()
	in.Birthday = "2021-01-15" // ISO, no MM/DD/YYYY
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, dogs.ErrInvalidInput)

	in = validCreateInput()
	in.EntryDate = "13/45/2024"
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, dogs.ErrInvalidInput)
}

func TestUpdate_PartialWithBirthdayRecompute(t *testing.T) {
	svc := dogs.NewService(mem.NewDogRepository(), nil, nil)

	d, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	originalAge := *d.AgeYears

	newBirthday := "01/15/2015"
	updated, err := svc.Update(context.Background(), d.ID, dogs.UpdateInput{
		Birthday: &newBirthday,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AgeYears)
	assert.Greater(t, *updated.AgeYears, originalAge)

	// Birthday no parseable: se guarda igual pero el snapshot de edad
	// anterior queda (fail-open).
	bad := "garbage"
	updated2, err := svc.Update(context.Background(), d.ID, dogs.UpdateInput{
		Birthday: &bad,
	})
	require.NoError(t, err)
	assert.Equal(t, "garbage", updated2.Birthday)
	require.NotNil(t, updated2.AgeYears)
	assert.Equal(t, *updated.AgeYears, *updated2.AgeYears)
}

func TestUpdate_RenameReencodes(t *testing.T) {
	repo := mem.NewDogRepository()
	svc := dogs.NewService(repo, nil, nil)

	d, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	newName := "Max"
	updated, err := svc.Update(context.Background(), d.ID, dogs.UpdateInput{DogName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Max", updated.Name)

	stored, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Name)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("Max")), stored.NameEncrypted)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := dogs.NewService(mem.NewDogRepository(), nil, nil)
	name := "Ghost"
	_, err := svc.Update(context.Background(), "missing-id", dogs.UpdateInput{DogName: &name})
	assert.ErrorIs(t, err, dogs.ErrNotFound)
}

func TestDelete_CleansUpOwnedPhotos(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewDogRepository()
	store := blobmem.NewStore()
	svc := dogs.NewService(repo, store, nil)

	d, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	// Una foto nuestra y una externa: solo la nuestra se borra.
	url400, err := store.Put(ctx, "resized/"+d.ID+"/400x400.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	require.NoError(t, svc.SetPhotoURLs(ctx, d.ID, url400, ""))

	ext := "https://elsewhere.example/photo.png"
	_, err = svc.Update(ctx, d.ID, dogs.UpdateInput{PhotoURL: &ext})
	require.NoError(t, err)

	res, err := svc.Delete(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, res.DogID)
	assert.Equal(t, "Luna", res.DogName)

	assert.Equal(t, 0, store.Len())
	_, err = svc.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, dogs.ErrNotFound)
}

func TestList_DecodesNamesAndAppliesQuery(t *testing.T) {
	ctx := context.Background()
	svc := dogs.NewService(mem.NewDogRepository(), nil, nil)

	first, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	in := validCreateInput()
	in.DogName = "Rocky"
	in.City = "Portland"
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)

	res, err := svc.List(ctx, map[string]string{"city": "seattle"})
	require.NoError(t, err)
	require.Len(t, res.Dogs, 1)
	assert.Equal(t, first.ID, res.Dogs[0].ID)
	assert.Equal(t, "Luna", res.Dogs[0].Name)
	assert.Equal(t, 1, res.Pagination.TotalItems)
}
