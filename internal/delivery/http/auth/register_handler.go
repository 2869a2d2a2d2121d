package auth_http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/model"
)

type Registrator interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
}

type RegisterHandler struct {
	authService Registrator
	validate    *validator.Validate
}

func NewRegisterHandler(authService Registrator, validate *validator.Validate) *RegisterHandler {
	return &RegisterHandler{
		authService: authService,
		validate:    validate,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, custom_errors.ErrInvalidInput)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		httpjson.WriteValidationError(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
