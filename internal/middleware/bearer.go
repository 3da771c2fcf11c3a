package middleware

import (
	"net/http"
	"strings"

	"github.com/psorokin/tripfolio/backend/internal/auth"
)

// NewBearerToken returns a middleware that lifts the request's
// "Authorization: Bearer <token>" header into the context for
// auth.RequestTokenSource to pick up. A missing or malformed header is not an
// error here — unauthenticated reads legitimately degrade downstream, and
// writes fail with 401 at the service boundary where the credential is
// actually needed.
func NewBearerToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
				r = r.WithContext(auth.WithToken(r.Context(), token))
			}
			next.ServeHTTP(w, r)
		})
	}
}
