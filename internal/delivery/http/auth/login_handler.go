package auth_http

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/model"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.Token, error)
}

type LoginHandler struct {
	authService Authenticator
	validate    *validator.Validate
}

func NewLoginHandler(authService Authenticator, validate *validator.Validate) *LoginHandler {
	return &LoginHandler{
		authService: authService,
		validate:    validate,
	}
}

type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Login implements the token endpoint. Credentials arrive form-encoded, as an
// OAuth2 password grant client would send them.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpjson.WriteError(w, custom_errors.ErrInvalidInput)
		return
	}

	req := LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(&req); err != nil {
		httpjson.WriteValidationError(w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, token)
}
