package post_http

import (
	"context"
	"net/http"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/delivery/http/middleware"
	"inkpost-service/internal/model"
)

type OwnerPostLister interface {
	ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*model.PostDetailed, error)
}

type UserPostsHandler struct {
	postService OwnerPostLister
}

func NewUserPostsHandler(postService OwnerPostLister) *UserPostsHandler {
	return &UserPostsHandler{postService: postService}
}

func (h *UserPostsHandler) UserPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpjson.WriteError(w, custom_errors.ErrUnauthenticated)
		return
	}

	skip, limit := pagination(r)

	posts, err := h.postService.ListByOwner(r.Context(), userID, skip, limit)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	if posts == nil {
		posts = []*model.PostDetailed{}
	}
	httpjson.WriteJSON(w, http.StatusOK, posts)
}
