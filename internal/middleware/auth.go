package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/idnildas/hipchat/internal/utils"
)

type ctxKey string

const ClaimsKey ctxKey = "claims"

// AuthJWT rejects requests without a valid bearer token with 401 and stores
// the token's claims in the request context.
func AuthJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				utils.Error(w, http.StatusUnauthorized, "Authenticated requests require a bearer token")
				return
			}
			claims, err := utils.ParseJWT(token, secret)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "Invalid OAuth session")
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope rejects tokens lacking scope with 403. It must run after AuthJWT.
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				utils.Error(w, http.StatusUnauthorized, "Authenticated requests require a bearer token")
				return
			}
			if !claims.HasScope(scope) {
				utils.Error(w, http.StatusForbidden, "This endpoint requires the '"+scope+"' scope")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFrom returns the claims AuthJWT stored in ctx.
func ClaimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*utils.Claims)
	return claims, ok
}
