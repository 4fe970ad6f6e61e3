package middleware

import (
	"net/http"
	"strings"

	"worldlib/internal/auth"
	"worldlib/internal/httputil"
)

// Auth resolves the acting principal from a bearer token. Requests without a
// token pass through anonymously; the catalog is publicly browsable and the
// handlers decide which operations require a session. A token that is present
// but invalid is rejected outright rather than downgraded to anonymous.
func Auth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "session expired, please login again")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
