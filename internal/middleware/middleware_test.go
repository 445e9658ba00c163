package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevIdentity(t *testing.T) {
	var gotID string
	var gotOK bool
	h := DevIdentity(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetUserID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Debug-User-ID", "user-42")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, gotOK)
	assert.Equal(t, "user-42", gotID)

	req = httptest.NewRequest("GET", "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, gotOK)
	assert.Empty(t, gotID)
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 429}, statuses)

	// Otra IP tiene su propia cuota.
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
