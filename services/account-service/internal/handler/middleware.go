package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/userhub/userhub-api/services/account-service/pkg/types"
)

type contextKey struct{}

var userClaimsKey = contextKey{}

// requireAccessToken verifies the bearer access token and stores its claims
// in the request context.
func (h *Handler) requireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims := &types.JWTClaims{}
		if _, err := h.jwtAuth.Parse(parts[1], h.accessTokenSecret, claims); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) (*types.JWTClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*types.JWTClaims)
	return claims, ok
}
