package dogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pupper-backend/internal/namecodec"
	"pupper-backend/internal/platform/logger"
	"pupper-backend/internal/ports/blob"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("dog not found")
)

type Service struct {
	repo   Repository
	blob   blob.Store // opcional: cleanup de fotos al borrar
	log    logger.Logger
	engine *Engine
	now    func() time.Time
}

func NewService(repo Repository, blobStore blob.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		blob:   blobStore,
		log:    log,
		engine: NewEngine(log),
		now:    time.Now,
	}
}

type CreateInput struct {
	ShelterName string
	City        string
	State       string
	DogName     string
	Species     string
	EntryDate   string
	Description string
	Birthday    string
	Weight      *float64
	Color       string
	PhotoURL    string
	ShelterID   string
	Tags        []string
}

// Create valida, normaliza y persiste un perro nuevo. El nombre se guarda
// solo ofuscado (namecodec); los derivados (edad fraccionaria, is_labrador)
// se calculan acá, una vez, como snapshot de escritura.
func (s *Service) Create(ctx context.Context, in CreateInput) (Dog, error) {
	if err := validateCreate(in); err != nil {
		return Dog{}, err
	}

	now := s.now().UTC()
	age, _ := AgeYearsAt(in.Birthday, now) // validado arriba, siempre parsea

	d := Dog{
		ID:            uuid.NewString(),
		ShelterID:     strings.TrimSpace(in.ShelterID),
		ShelterName:   strings.TrimSpace(in.ShelterName),
		City:          strings.TrimSpace(in.City),
		State:         strings.ToUpper(strings.TrimSpace(in.State)),
		Name:          in.DogName,
		NameEncrypted: namecodec.Encode(in.DogName),
		Species:       strings.TrimSpace(in.Species),
		Description:   in.Description,
		Color:         strings.ToLower(strings.TrimSpace(in.Color)),
		EntryDate:     strings.TrimSpace(in.EntryDate),
		Birthday:      strings.TrimSpace(in.Birthday),
		Weight:        in.Weight,
		AgeYears:      &age,
		PhotoURL:      in.PhotoURL,
		Tags:          in.Tags,
		IsLabrador:    SpeciesIsLabrador(in.Species),
		WagCount:      0,
		GrowlCount:    0,
		Status:        StatusAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// El nombre plano no viaja al repo.
	stored := d
	stored.Name = ""
	if err := s.repo.Create(ctx, stored); err != nil {
		return Dog{}, err
	}
	return d, nil
}

func validateCreate(in CreateInput) error {
	required := map[string]string{
		"shelter_name":       in.ShelterName,
		"city":               in.City,
		"state":              in.State,
		"dog_name":           in.DogName,
		"dog_species":        in.Species,
		"shelter_entry_date": in.EntryDate,
		"dog_description":    in.Description,
		"dog_birthday":       in.Birthday,
		"dog_color":          in.Color,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: missing required field: %s", ErrInvalidInput, field)
		}
	}
	if in.Weight == nil {
		return fmt.Errorf("%w: missing required field: dog_weight", ErrInvalidInput)
	}
	if *in.Weight <= 0 {
		return fmt.Errorf("%w: dog_weight must be a positive number", ErrInvalidInput)
	}
	if !SpeciesIsLabrador(in.Species) {
		return fmt.Errorf("%w: only Labrador Retrievers are allowed in Pupper", ErrInvalidInput)
	}
	if _, ok := ParseDate(in.Birthday); !ok {
		return fmt.Errorf("%w: dog_birthday must be MM/DD/YYYY", ErrInvalidInput)
	}
	if _, ok := ParseDate(in.EntryDate); !ok {
		return fmt.Errorf("%w: shelter_entry_date must be MM/DD/YYYY", ErrInvalidInput)
	}
	return nil
}

// GetByID devuelve el perro con el nombre ya decodificado para display.
func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dog{}, ErrNotFound
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}
	d.Name = namecodec.Decode(d.NameEncrypted)
	return d, nil
}

// List escanea la colección completa, decodifica nombres y corre el motor
// de consulta sobre el snapshot. Sin cache: cada list es un scan.
func (s *Service) List(ctx context.Context, params map[string]string) (QueryResult, error) {
	all, err := s.repo.Scan(ctx)
	if err != nil {
		return QueryResult{}, err
	}
	for i := range all {
		all[i].Name = namecodec.Decode(all[i].NameEncrypted)
	}
	return s.engine.Apply(all, params), nil
}

// UpdateInput: punteros = campo no enviado. Sigue la lista de campos
// actualizables del contrato; todo lo demás es inmutable por update.
type UpdateInput struct {
	ShelterName *string
	City        *string
	State       *string
	DogName     *string
	Species     *string
	EntryDate   *string
	Description *string
	Birthday    *string
	Weight      *float64
	Color       *string
	PhotoURL    *string
	Status      *string
	Tags        *[]string
}

// Update aplica un update parcial con las mismas normalizaciones que Create
// y recalcula derivados cuando cambia el campo fuente:
//   - birthday => recalcula dog_age_years (fail-open: birthday no parseable
//     deja el snapshot anterior, no falla el update)
//   - species  => revalida el gate de labrador y recalcula is_labrador
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dog, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	if in.Species != nil && !SpeciesIsLabrador(*in.Species) {
		return Dog{}, fmt.Errorf("%w: only Labrador Retrievers are allowed in Pupper", ErrInvalidInput)
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return Dog{}, fmt.Errorf("%w: dog_weight must be a positive number", ErrInvalidInput)
	}

	if in.ShelterName != nil {
		current.ShelterName = strings.TrimSpace(*in.ShelterName)
	}
	if in.City != nil {
		current.City = strings.TrimSpace(*in.City)
	}
	if in.State != nil {
		current.State = strings.ToUpper(strings.TrimSpace(*in.State))
	}
	if in.Species != nil {
		current.Species = strings.TrimSpace(*in.Species)
		current.IsLabrador = SpeciesIsLabrador(current.Species)
	}
	if in.EntryDate != nil {
		current.EntryDate = strings.TrimSpace(*in.EntryDate)
	}
	if in.Description != nil {
		current.Description = *in.Description
	}
	if in.Birthday != nil {
		current.Birthday = strings.TrimSpace(*in.Birthday)
		if age, ok := AgeYearsAt(current.Birthday, s.now()); ok {
			current.AgeYears = &age
		}
	}
	if in.Weight != nil {
		current.Weight = in.Weight
	}
	if in.Color != nil {
		current.Color = strings.ToLower(strings.TrimSpace(*in.Color))
	}
	if in.PhotoURL != nil {
		current.PhotoURL = *in.PhotoURL
	}
	if in.Status != nil {
		current.Status = Status(strings.ToLower(strings.TrimSpace(*in.Status)))
	}
	if in.Tags != nil {
		current.Tags = *in.Tags
	}
	if in.DogName != nil {
		current.NameEncrypted = namecodec.Encode(*in.DogName)
	}

	current.UpdatedAt = s.now().UTC()
	current.Name = ""

	if err := s.repo.Update(ctx, current); err != nil {
		return Dog{}, err
	}

	current.Name = namecodec.Decode(current.NameEncrypted)
	return current, nil
}

// DeleteResult es lo que devuelve el borrado: id, nombre para display y
// timestamp del borrado.
type DeleteResult struct {
	DogID     string
	DogName   string
	DeletedAt time.Time
}

// Delete borra el registro y hace cleanup best-effort de las fotos cuyo
// key matchea nuestro blob store. Un fallo de cleanup nunca aborta el
// borrado: se loguea y se sigue.
func (s *Service) Delete(ctx context.Context, id string) (DeleteResult, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}

	s.cleanupPhotos(ctx, current)

	if err := s.repo.Delete(ctx, id); err != nil {
		return DeleteResult{}, err
	}

	return DeleteResult{
		DogID:     id,
		DogName:   namecodec.Decode(current.NameEncrypted),
		DeletedAt: s.now().UTC(),
	}, nil
}

func (s *Service) cleanupPhotos(ctx context.Context, d Dog) {
	if s.blob == nil {
		return
	}
	for _, url := range []string{d.PhotoURL, d.Photo400URL, d.Photo50URL} {
		if url == "" {
			continue
		}
		key, ok := s.blob.KeyForURL(url)
		if !ok {
			continue
		}
		if err := s.blob.Delete(ctx, key); err != nil {
			s.log.Warn("failed to delete dog photo", map[string]any{
				"dog_id": d.ID,
				"key":    key,
				"error":  err.Error(),
			})
		}
	}
}

// SetPhotoURLs actualiza las URLs derivadas después del resize pipeline.
// Best-effort: lo llama el módulo de imágenes, no el flujo principal.
func (s *Service) SetPhotoURLs(ctx context.Context, id, url400, url50 string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if url400 != "" {
		current.Photo400URL = url400
	}
	if url50 != "" {
		current.Photo50URL = url50
	}
	current.UpdatedAt = s.now().UTC()
	current.Name = ""
	return s.repo.Update(ctx, current)
}

// IncrementCounter expone el incremento atómico para el módulo de votos.
func (s *Service) IncrementCounter(ctx context.Context, id string, field CounterField, delta int) error {
	return s.repo.IncrementCounter(ctx, id, field, delta)
}
