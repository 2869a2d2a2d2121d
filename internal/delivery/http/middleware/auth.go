package middleware

import (
	"context"
	"net/http"
	"strings"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
)

type contextKey int

const userIDKey contextKey = iota

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(tokenString string) (int64, error)
}

// Auth rejects requests without a valid "Authorization: Bearer <token>" header
// and stores the verified user id in the request context. Any token failure is
// reported as unauthenticated, never as a more specific error.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				httpjson.WriteError(w, custom_errors.ErrUnauthenticated)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				httpjson.WriteError(w, custom_errors.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
