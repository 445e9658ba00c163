package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "user_id"

// DevIdentity toma la identidad del header X-Debug-User-ID y la cuelga
// del contexto. No es autenticación: es el reemplazo de desarrollo
// mientras no haya un proveedor de identidad delante del servicio.
func DevIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID devuelve el user id del contexto, si la petición traía uno.
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
