package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pupper-backend/internal/config"
	"pupper-backend/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{Config: config.Config{}}))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, string(raw))
	}
	return env
}

func createDog(t *testing.T, baseURL, name string) string {
	t.Helper()

	st, raw := doReq(t, baseURL, "POST", "/dogs", map[string]any{
		"shelter_name":       "Happy Tails",
		"city":               "Seattle",
		"state":              "WA",
		"dog_name":           name,
		"dog_species":        "Labrador Retriever",
		"shelter_entry_date": "03/10/2024",
		"dog_description":    "Sweet and playful",
		"dog_birthday":       "01/15/2021",
		"dog_weight":         32.5,
		"dog_color":          "yellow",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating dog, got %d body=%s", st, string(raw))
	}

	env := decodeEnvelope(t, raw)
	var data struct {
		DogID string `json:"dog_id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode dog: %v", err)
	}
	if data.DogID == "" {
		t.Fatalf("empty dog_id in response: %s", string(raw))
	}
	return data.DogID
}

func TestHTTP_EndToEnd_DogLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// 1) Health arriba
	{
		st, _ := doReq(t, ts.URL, "GET", "/health", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health, got %d", st)
		}
	}

	// 2) Crear perro
	dogID := createDog(t, ts.URL, "Luna")

	// 3) GET lo devuelve con el nombre de display
	{
		st, raw := doReq(t, ts.URL, "GET", "/dogs/"+dogID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get dog, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		var d struct {
			DogName    string `json:"dog_name"`
			IsLabrador bool   `json:"is_labrador"`
			State      string `json:"state"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if d.DogName != "Luna" {
			t.Fatalf("expected display name Luna, got %q", d.DogName)
		}
		if !d.IsLabrador {
			t.Fatalf("expected is_labrador true")
		}
	}

	// 4) Especie no-labrador rechazada con 400
	{
		st, raw := doReq(t, ts.URL, "POST", "/dogs", map[string]any{
			"shelter_name":       "Happy Tails",
			"city":               "Seattle",
			"state":              "WA",
			"dog_name":           "Fifi",
			"dog_species":        "Poodle",
			"shelter_entry_date": "03/10/2024",
			"dog_description":    "Fluffy",
			"dog_birthday":       "01/15/2021",
			"dog_weight":         8.0,
			"dog_color":          "white",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for poodle, got %d body=%s", st, string(raw))
		}
	}

	// 5) Update parcial
	{
		st, raw := doReq(t, ts.URL, "PATCH", "/dogs/"+dogID, map[string]any{
			"dog_description": "Now house-trained",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch dog, got %d body=%s", st, string(raw))
		}
	}

	// 6) Votos: dos wags y un growl
	{
		for _, vt := range []string{"wag", "wag", "growl"} {
			st, raw := doReq(t, ts.URL, "POST", "/dogs/"+dogID+"/vote", map[string]any{
				"user_id":   "user-1",
				"vote_type": vt,
			})
			if st != http.StatusOK {
				t.Fatalf("expected 200 vote %s, got %d body=%s", vt, st, string(raw))
			}
		}

		st, raw := doReq(t, ts.URL, "GET", "/dogs/"+dogID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get dog, got %d", st)
		}
		env := decodeEnvelope(t, raw)
		var d struct {
			WagCount   int `json:"wag_count"`
			GrowlCount int `json:"growl_count"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if d.WagCount != 2 || d.GrowlCount != 1 {
			t.Fatalf("expected counters 2/1, got %d/%d", d.WagCount, d.GrowlCount)
		}
	}

	// 7) Vote type inválido
	{
		st, _ := doReq(t, ts.URL, "POST", "/dogs/"+dogID+"/vote", map[string]any{
			"user_id":   "user-1",
			"vote_type": "meow",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid vote type, got %d", st)
		}
	}

	// 8) Delete y 404 posterior
	{
		st, raw := doReq(t, ts.URL, "DELETE", "/dogs/"+dogID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete, got %d body=%s", st, string(raw))
		}

		st, _ = doReq(t, ts.URL, "GET", "/dogs/"+dogID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_ListDogs_FiltersSortingPagination(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 25; i++ {
		createDog(t, ts.URL, fmt.Sprintf("Dog-%02d", i))
	}

	// Página 2 de 25 con limit 10
	{
		st, raw := doReq(t, ts.URL, "GET", "/dogs?page=2&limit=10&sort_by=dog_name&sort_order=asc", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		var data struct {
			Dogs []struct {
				DogName string `json:"dog_name"`
			} `json:"dogs"`
			Pagination struct {
				CurrentPage int  `json:"current_page"`
				TotalItems  int  `json:"total_items"`
				TotalPages  int  `json:"total_pages"`
				HasNext     bool `json:"has_next"`
				HasPrev     bool `json:"has_prev"`
			} `json:"pagination"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		if len(data.Dogs) != 10 {
			t.Fatalf("expected 10 dogs on page 2, got %d", len(data.Dogs))
		}
		if data.Dogs[0].DogName != "Dog-10" {
			t.Fatalf("expected Dog-10 first on page 2, got %s", data.Dogs[0].DogName)
		}
		p := data.Pagination
		if p.CurrentPage != 2 || p.TotalItems != 25 || p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
			t.Fatalf("unexpected pagination: %+v", p)
		}
	}

	// Filtro malformado: fail-open, devuelve todo igual
	{
		st, raw := doReq(t, ts.URL, "GET", "/dogs?min_weight=abc&limit=100", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 with malformed filter, got %d", st)
		}
		env := decodeEnvelope(t, raw)
		var data struct {
			Dogs       []json.RawMessage `json:"dogs"`
			Pagination struct {
				TotalItems int `json:"total_items"`
			} `json:"pagination"`
			FiltersApplied map[string]string `json:"filters_applied"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		if data.Pagination.TotalItems != 25 {
			t.Fatalf("expected all 25 dogs with malformed filter, got %d", data.Pagination.TotalItems)
		}
		if data.FiltersApplied["min_weight"] != "abc" {
			t.Fatalf("expected filter echo, got %v", data.FiltersApplied)
		}
	}

	// Search por nombre decodificado
	{
		st, raw := doReq(t, ts.URL, "GET", "/dogs?search=Dog-07", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d", st)
		}
		env := decodeEnvelope(t, raw)
		var data struct {
			Dogs []struct {
				DogName string `json:"dog_name"`
			} `json:"dogs"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode search: %v", err)
		}
		if len(data.Dogs) != 1 || data.Dogs[0].DogName != "Dog-07" {
			t.Fatalf("unexpected search result: %+v", data.Dogs)
		}
	}
}

func TestHTTP_SheltersAndUsers(t *testing.T) {
	ts := newTestServer(t)

	// Shelter create + get
	var shelterID string
	{
		st, raw := doReq(t, ts.URL, "POST", "/shelters", map[string]any{
			"shelter_name":  "Happy Tails",
			"city":          "Seattle",
			"state":         "wa",
			"contact_email": "adopt@happytails.example",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 shelter, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		var data struct {
			ShelterID string `json:"shelter_id"`
			State     string `json:"state"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode shelter: %v", err)
		}
		if data.State != "WA" {
			t.Fatalf("expected normalized state WA, got %q", data.State)
		}
		shelterID = data.ShelterID
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/shelters/"+shelterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get shelter, got %d", st)
		}
	}

	// User create + patch preferences
	var userID string
	{
		st, raw := doReq(t, ts.URL, "POST", "/users", map[string]any{
			"email":    "ana@example.com",
			"username": "ana",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 user, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		var data struct {
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode user: %v", err)
		}
		userID = data.UserID
	}
	{
		st, raw := doReq(t, ts.URL, "PATCH", "/users/"+userID, map[string]any{
			"state_preference": "or",
			"color_preference": "CHOCOLATE",
			"max_weight_preference": 40.0,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch user, got %d body=%s", st, string(raw))
		}
		env := decodeEnvelope(t, raw)
		var data struct {
			StatePreference string `json:"state_preference"`
			ColorPreference string `json:"color_preference"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode user: %v", err)
		}
		if data.StatePreference != "OR" || data.ColorPreference != "chocolate" {
			t.Fatalf("expected normalized preferences, got %+v", data)
		}
	}

	// 404s
	{
		st, _ := doReq(t, ts.URL, "GET", "/shelters/nope", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 shelter, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/users/nope", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 user, got %d", st)
		}
	}
}

func TestHTTP_MetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	st, raw := doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if len(raw) == 0 {
		t.Fatal("expected non-empty metrics body")
	}
}
