package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/Chandima0406/NovaScript/httpx"
)

// Authenticated verifies the bearer token and rejects requests without a
// valid one. Handlers behind it can rely on UserID returning an id.
func Authenticated(tokenAuth *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(jwtauth.Verifier(tokenAuth), authenticator).Handler(next)
	}
}

func authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil || jwt.Validate(token) != nil {
			httpx.Message(w, r, http.StatusUnauthorized, "Not authorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID extracts the caller's user id from the verified token claims.
func UserID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	id, _ := claims["id"].(string)
	return id
}

// Role extracts the caller's role claim.
func Role(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
