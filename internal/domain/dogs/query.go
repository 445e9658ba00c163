package dogs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"pupper-backend/internal/platform/logger"
)

// Defaults del listado. limit se clampa a [1, MaxPageSize].
const (
	DefaultSortBy    = "created_at"
	DefaultSortOrder = "desc"
	DefaultPageSize  = 20
	MaxPageSize      = 100
)

type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

type SortSpec struct {
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type QueryResult struct {
	Dogs           []Dog
	Pagination     Pagination
	FiltersApplied map[string]string
	Sort           SortSpec
}

// Engine es el motor de listado: search de texto + filtros por campo +
// orden + paginado, todo en memoria sobre el snapshot del scan.
//
// Es una función pura sobre sus inputs (no muta el snapshot, no guarda
// estado): seguro para invocaciones paralelas sin locks. La única salida
// lateral es el warn cuando el orden falla.
type Engine struct {
	log logger.Logger
	now func() time.Time
}

func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{log: log, now: time.Now}
}

// Apply corre el pipeline completo: search -> filtros -> orden -> paginado.
// params son los query params crudos del request (string -> string).
//
// Política fail-open: un valor de filtro malformado NUNCA falla el request
// ni vacía el resultado; el filtro se ignora como si no hubiera venido.
func (e *Engine) Apply(all []Dog, params map[string]string) QueryResult {
	filtered := make([]Dog, 0, len(all))
	for _, d := range all {
		if e.matches(d, params) {
			filtered = append(filtered, d)
		}
	}

	sortBy := paramOr(params, "sort_by", DefaultSortBy)
	sortOrder := paramOr(params, "sort_order", DefaultSortOrder)
	sorted := e.sortDogs(filtered, sortBy, sortOrder)

	page, limit := pageParams(params)
	window, meta := paginate(sorted, page, limit)

	return QueryResult{
		Dogs:           window,
		Pagination:     meta,
		FiltersApplied: filtersApplied(params),
		Sort:           SortSpec{SortBy: sortBy, SortOrder: sortOrder},
	}
}

// --- search -----------------------------------------------------------

// matchesSearch: substring case-insensitive sobre los campos de texto
// denormalizados + tags. Sin tokenización ni ranking; primer match gana.
func matchesSearch(d Dog, query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}

	candidates := []string{
		d.Name,
		d.Species,
		d.Description,
		d.ShelterName,
		d.City,
		d.State,
		d.Color,
		string(d.Status),
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// --- filtros ----------------------------------------------------------

// matches aplica el AND de todos los filtros presentes.
func (e *Engine) matches(d Dog, params map[string]string) bool {
	if !matchesSearch(d, params["search"]) {
		return false
	}

	if v := params["state"]; v != "" && !strings.EqualFold(d.State, v) {
		return false
	}
	if v := params["city"]; v != "" && !containsFold(d.City, v) {
		return false
	}

	// Peso: rango inclusivo. Si el perro no tiene peso, los filtros de peso
	// se saltean (fail-open, igual que con valores no numéricos).
	if d.Weight != nil {
		if min, ok := floatParam(params, "min_weight"); ok && *d.Weight < min {
			return false
		}
		if max, ok := floatParam(params, "max_weight"); ok && *d.Weight > max {
			return false
		}
	}

	// Edad: usa el snapshot fraccionario; si falta, cae al cálculo entero
	// desde el birthday (WholeYearsAt). Sin ninguno de los dos, se saltea.
	age := d.AgeYears
	if age == nil && d.Birthday != "" {
		if years, ok := WholeYearsAt(d.Birthday, e.now()); ok {
			f := float64(years)
			age = &f
		}
	}
	if age != nil {
		if min, ok := floatParam(params, "min_age"); ok && *age < min {
			return false
		}
		if max, ok := floatParam(params, "max_age"); ok && *age > max {
			return false
		}
	}

	if v := params["color"]; v != "" && !containsFold(d.Color, v) {
		return false
	}
	if v := params["status"]; v != "" && !strings.EqualFold(string(d.Status), v) {
		return false
	}
	if v := params["species"]; v != "" && !containsFold(d.Species, v) {
		return false
	}
	if v := params["shelter"]; v != "" && !containsFold(d.ShelterName, v) {
		return false
	}

	// Rango de fecha de ingreso. Si la fecha DEL PERRO no parsea, el filtro
	// se saltea (no se rechaza el perro); si la del FILTRO no parsea, ese
	// límite queda deshabilitado.
	if params["entry_date_from"] != "" || params["entry_date_to"] != "" {
		if entry, ok := ParseDate(d.EntryDate); ok {
			if from, ok := ParseDate(params["entry_date_from"]); ok && entry.Before(from) {
				return false
			}
			if to, ok := ParseDate(params["entry_date_to"]); ok && entry.After(to) {
				return false
			}
		}
	}

	if min, ok := intParam(params, "min_wag_count"); ok && d.WagCount < min {
		return false
	}
	if max, ok := intParam(params, "max_growl_count"); ok && d.GrowlCount > max {
		return false
	}

	if v := params["is_labrador"]; v != "" {
		if d.IsLabrador != isTruthy(v) {
			return false
		}
	}

	if v := params["tags"]; v != "" && !matchesTags(d.Tags, v) {
		return false
	}

	return true
}

// matchesTags: lista separada por comas; matchea si algún tag del filtro es
// substring del join de los tags del perro.
func matchesTags(dogTags []string, filter string) bool {
	joined := strings.ToLower(strings.Join(dogTags, " "))
	for _, t := range strings.Split(filter, ",") {
		if strings.Contains(joined, strings.ToLower(strings.TrimSpace(t))) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// floatParam devuelve (valor, true) solo si el param vino y es numérico.
// Cualquier otro caso es "filtro ausente".
func floatParam(params map[string]string, key string) (float64, bool) {
	v := params[key]
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func intParam(params map[string]string, key string) (int, bool) {
	v := params[key]
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func paramOr(params map[string]string, key, fallback string) string {
	if v := params[key]; v != "" {
		return v
	}
	return fallback
}

// --- orden ------------------------------------------------------------

type sortKind int

const (
	kindNumber sortKind = iota
	kindTime
	kindString
)

type sortKey struct {
	kind sortKind
	num  float64
	t    time.Time
	s    string
}

func (k sortKey) less(o sortKey) bool {
	switch k.kind {
	case kindNumber:
		return k.num < o.num
	case kindTime:
		return k.t.Before(o.t)
	default:
		return k.s < o.s
	}
}

// sortDogs ordena estable por el campo pedido. Un fallo inesperado en la
// extracción de keys no es fatal: se loguea y se devuelve el orden filtrado
// tal cual (el orden es best-effort, el resultado no).
func (e *Engine) sortDogs(in []Dog, sortBy, sortOrder string) (out []Dog) {
	if sortBy == "" {
		return in
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("sort failed, returning unsorted", map[string]any{
				"sort_by": sortBy,
				"error":   fmt.Sprint(r),
			})
			out = in
		}
	}()

	type keyed struct {
		key sortKey
		dog Dog
	}
	items := make([]keyed, len(in))
	for i, d := range in {
		items[i] = keyed{key: sortKeyFor(d, sortBy), dog: d}
	}

	desc := strings.EqualFold(sortOrder, "desc")
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return items[j].key.less(items[i].key)
		}
		return items[i].key.less(items[j].key)
	})

	out = make([]Dog, len(items))
	for i, it := range items {
		out[i] = it.dog
	}
	return out
}

// sortKeyFor clasifica el campo en numérico / fecha-hora / fecha / string.
// Valores ausentes o no parseables colapsan al mínimo de su tipo (0, instante
// cero, string vacío) en vez de fallar.
func sortKeyFor(d Dog, sortBy string) sortKey {
	switch sortBy {
	case "dog_weight":
		return sortKey{kind: kindNumber, num: floatOrZero(d.Weight)}
	case "dog_age_years":
		return sortKey{kind: kindNumber, num: floatOrZero(d.AgeYears)}
	case "wag_count":
		return sortKey{kind: kindNumber, num: float64(d.WagCount)}
	case "growl_count":
		return sortKey{kind: kindNumber, num: float64(d.GrowlCount)}
	case "created_at":
		return sortKey{kind: kindTime, t: d.CreatedAt}
	case "updated_at":
		return sortKey{kind: kindTime, t: d.UpdatedAt}
	case "shelter_entry_date":
		t, _ := ParseDate(d.EntryDate)
		return sortKey{kind: kindTime, t: t}
	case "dog_birthday":
		t, _ := ParseDate(d.Birthday)
		return sortKey{kind: kindTime, t: t}
	default:
		return sortKey{kind: kindString, s: strings.ToLower(stringField(d, sortBy))}
	}
}

// stringField resuelve el resto de los campos del wire por comparación
// de strings. Un nombre que no es campo del registro => key vacía para
// todos (el sort estable preserva el orden de entrada).
func stringField(d Dog, field string) string {
	switch field {
	case "dog_id":
		return d.ID
	case "dog_name":
		return d.Name
	case "dog_species":
		return d.Species
	case "dog_description":
		return d.Description
	case "shelter_name":
		return d.ShelterName
	case "shelter_id":
		return d.ShelterID
	case "city":
		return d.City
	case "state":
		return d.State
	case "dog_color":
		return d.Color
	case "status":
		return string(d.Status)
	case "dog_photo_url":
		return d.PhotoURL
	case "dog_photo_400x400_url":
		return d.Photo400URL
	case "dog_photo_50x50_url":
		return d.Photo50URL
	case "tags":
		return strings.Join(d.Tags, " ")
	default:
		return ""
	}
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// --- paginado ---------------------------------------------------------

// pageParams: page 1-based (default 1, piso 1), limit default 20 clampeado
// a [1, 100]. Input inválido resetea al default en silencio, nunca error.
func pageParams(params map[string]string) (page, limit int) {
	page = 1
	if v := params["page"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if page < 1 {
		page = 1
	}

	limit = DefaultPageSize
	if v := params["limit"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func paginate(in []Dog, page, limit int) ([]Dog, Pagination) {
	total := len(in)
	start := (page - 1) * limit
	end := start + limit

	window := make([]Dog, 0, limit)
	if start < total {
		capped := end
		if capped > total {
			capped = total
		}
		window = append(window, in[start:capped]...)
	}

	return window, Pagination{
		CurrentPage: page,
		PerPage:     limit,
		TotalItems:  total,
		TotalPages:  (total + limit - 1) / limit,
		HasNext:     end < total,
		HasPrev:     page > 1,
	}
}

// filtersApplied es el eco de los filtros reconocibles del request
// (todo menos los params de paginado/orden). Va tal cual en la respuesta.
func filtersApplied(params map[string]string) map[string]string {
	out := make(map[string]string)
	for k, v := range params {
		switch k {
		case "page", "limit", "sort_by", "sort_order":
			continue
		}
		out[k] = v
	}
	return out
}
