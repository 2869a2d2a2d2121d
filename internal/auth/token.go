package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"inkpost-service/internal/custom_errors"
)

// Claims carries the authenticated user id alongside the registered claims.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed access tokens. The secret is
// injected once at construction and never read from ambient state.
type TokenManager struct {
	secret    []byte
	algorithm string
	method    jwt.SigningMethod
	ttl       time.Duration
}

func NewTokenManager(secret, algorithm string, ttl time.Duration) (*TokenManager, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q: only HMAC methods take a shared secret", algorithm)
	}
	return &TokenManager{
		secret:    []byte(secret),
		algorithm: algorithm,
		method:    method,
		ttl:       ttl,
	}, nil
}

func (m *TokenManager) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(m.method, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id bound to the token. Every structural, signature
// or expiry failure maps to an auth sentinel so callers never surface a more
// specific business error for a bad token.
func (m *TokenManager) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{m.algorithm}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, custom_errors.ErrTokenExpired
		}
		return 0, custom_errors.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, custom_errors.ErrInvalidToken
	}

	return claims.UserID, nil
}
