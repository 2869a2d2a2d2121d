package post_http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/delivery/http/middleware"
	"inkpost-service/internal/model"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, requesterID, id int64) (*model.Post, error)
}

type DeletePostHandler struct {
	postService PostDeleter
	validate    *validator.Validate
}

func NewDeletePostHandler(postService PostDeleter, validate *validator.Validate) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		validate:    validate,
	}
}

type DeletePostRequest struct {
	ID int64 `validate:"required,gt=0"`
}

func (h *DeletePostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpjson.WriteError(w, custom_errors.ErrUnauthenticated)
		return
	}

	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpjson.WriteError(w, custom_errors.ErrInvalidInput)
		return
	}

	req := DeletePostRequest{ID: postID}
	if err := h.validate.Struct(&req); err != nil {
		httpjson.WriteValidationError(w, err)
		return
	}

	post, err := h.postService.DeletePost(r.Context(), userID, postID)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, post)
}
