package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/middleware"
)

type fakeVerifier struct {
	userID int64
	err    error
	seen   string
}

func (v *fakeVerifier) Verify(tokenString string) (int64, error) {
	v.seen = tokenString
	return v.userID, v.err
}

func TestAuth(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		verifier := &fakeVerifier{userID: 7}

		var gotUserID int64
		var gotOK bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, gotOK = middleware.UserIDFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/user/posts", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()

		middleware.Auth(verifier)(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, int64(7), gotUserID)
		assert.Equal(t, "some-token", verifier.seen)
	})

	t.Run("LowercaseScheme", func(t *testing.T) {
		verifier := &fakeVerifier{userID: 7}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/user/posts", nil)
		req.Header.Set("Authorization", "bearer some-token")
		rec := httptest.NewRecorder()

		middleware.Auth(verifier)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		verifier := &fakeVerifier{userID: 7}
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		req := httptest.NewRequest(http.MethodGet, "/user/posts", nil)
		rec := httptest.NewRecorder()

		middleware.Auth(verifier)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.False(t, called)
	})

	t.Run("WrongScheme", func(t *testing.T) {
		verifier := &fakeVerifier{userID: 7}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		})

		req := httptest.NewRequest(http.MethodGet, "/user/posts", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		middleware.Auth(verifier)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		verifier := &fakeVerifier{err: custom_errors.ErrInvalidToken}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		})

		req := httptest.NewRequest(http.MethodGet, "/user/posts", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		middleware.Auth(verifier)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
	})
}
