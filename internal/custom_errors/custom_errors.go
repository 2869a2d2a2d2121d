package custom_errors

import "errors"

var (
	// Input / validation.
	ErrInvalidInput = errors.New("invalid input")

	// Auth.
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")

	// Resources.
	ErrUserNotFound  = errors.New("user not found")
	ErrPostNotFound  = errors.New("post not found")
	ErrMediaNotFound = errors.New("media not found")

	// Rate limiting.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// Infrastructure.
	ErrDatabaseQuery        = errors.New("database query error")
	ErrDatabaseScan         = errors.New("database scan error")
	ErrCacheMiss            = errors.New("cache miss")
	ErrMediaAttachFailed    = errors.New("failed to attach media")
	ErrMediaQueryFailed     = errors.New("failed to query media")
	ErrUploadFailed         = errors.New("failed to upload file to storage")
	ErrExternalServiceError = errors.New("external service error")
)
