package post_http

import (
	"context"
	"net/http"

	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/model"
)

type PostLister interface {
	ListVisible(ctx context.Context, skip, limit int) ([]*model.PostDetailed, error)
}

type ListPostsHandler struct {
	postService PostLister
}

func NewListPostsHandler(postService PostLister) *ListPostsHandler {
	return &ListPostsHandler{postService: postService}
}

func (h *ListPostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	posts, err := h.postService.ListVisible(r.Context(), skip, limit)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	if posts == nil {
		posts = []*model.PostDetailed{}
	}
	httpjson.WriteJSON(w, http.StatusOK, posts)
}
