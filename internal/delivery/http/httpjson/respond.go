package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkpost-service/internal/custom_errors"
)

// ErrorResponse mirrors the {"detail": ...} error body of the HTTP API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a sentinel error into the HTTP taxonomy. Anything
// unrecognized becomes a 500 with no internal detail.
func WriteError(w http.ResponseWriter, err error) {
	status, detail := statusFor(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	WriteJSON(w, status, ErrorResponse{Detail: detail})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, custom_errors.ErrInvalidInput):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, custom_errors.ErrUsernameExists):
		return http.StatusConflict, "Username already taken"
	case errors.Is(err, custom_errors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, custom_errors.ErrInvalidToken),
		errors.Is(err, custom_errors.ErrTokenExpired),
		errors.Is(err, custom_errors.ErrUnauthenticated):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, custom_errors.ErrForbidden):
		return http.StatusForbidden, "Not the owner of this post"
	case errors.Is(err, custom_errors.ErrPostNotFound):
		return http.StatusNotFound, "Post not found"
	case errors.Is(err, custom_errors.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, custom_errors.ErrMediaNotFound):
		return http.StatusNotFound, "Media not found"
	case errors.Is(err, custom_errors.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, "Rate limit exceeded"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// WriteValidationError reports a request-body validation failure as 422.
func WriteValidationError(w http.ResponseWriter, err error) {
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: "Invalid request: " + err.Error()})
}
