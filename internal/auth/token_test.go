package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost-service/internal/auth"
	"inkpost-service/internal/custom_errors"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		tm, err := auth.NewTokenManager("test-secret", "HS256", 30*time.Minute)
		require.NoError(t, err)

		token, err := tm.Issue(42)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("Expired", func(t *testing.T) {
		tm, err := auth.NewTokenManager("test-secret", "HS256", -1*time.Minute)
		require.NoError(t, err)

		token, err := tm.Issue(42)
		require.NoError(t, err)

		_, err = tm.Verify(token)
		assert.ErrorIs(t, err, custom_errors.ErrTokenExpired)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		issuer, err := auth.NewTokenManager("secret-one", "HS256", 30*time.Minute)
		require.NoError(t, err)
		verifier, err := auth.NewTokenManager("secret-two", "HS256", 30*time.Minute)
		require.NoError(t, err)

		token, err := issuer.Issue(42)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		tm, err := auth.NewTokenManager("test-secret", "HS256", 30*time.Minute)
		require.NoError(t, err)

		_, err = tm.Verify("not.a.token")
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
	})

	t.Run("AlgorithmMismatch", func(t *testing.T) {
		issuer, err := auth.NewTokenManager("test-secret", "HS512", 30*time.Minute)
		require.NoError(t, err)
		verifier, err := auth.NewTokenManager("test-secret", "HS256", 30*time.Minute)
		require.NoError(t, err)

		token, err := issuer.Issue(42)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
	})
}

func TestNewTokenManager_UnknownAlgorithm(t *testing.T) {
	_, err := auth.NewTokenManager("test-secret", "XS999", 30*time.Minute)
	assert.Error(t, err)

	_, err = auth.NewTokenManager("test-secret", "RS256", 30*time.Minute)
	assert.Error(t, err)
}
