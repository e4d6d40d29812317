package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/maxbiz-creator/audiocraft-studio/internal/models"
	"github.com/maxbiz-creator/audiocraft-studio/internal/services"
)

type contextKey string

const accountContextKey contextKey = "account"

// RequireAuth guards a route group behind bearer authentication. The
// resolved account rides the request context for downstream handlers.
func RequireAuth(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				respondWithError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			account, err := auth.VerifyToken(r.Context(), token)
			if err != nil {
				respondServiceError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext returns the authenticated account placed by RequireAuth.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*models.Account)
	return account, ok
}
