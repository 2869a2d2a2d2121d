package post_http

import (
	"context"
	"net/http"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/model"
)

type PostSearcher interface {
	Search(ctx context.Context, query string, skip, limit int) ([]*model.PostDetailed, error)
}

type SearchPostsHandler struct {
	postService PostSearcher
}

func NewSearchPostsHandler(postService PostSearcher) *SearchPostsHandler {
	return &SearchPostsHandler{postService: postService}
}

func (h *SearchPostsHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		httpjson.WriteError(w, custom_errors.ErrInvalidInput)
		return
	}

	skip, limit := pagination(r)

	posts, err := h.postService.Search(r.Context(), query, skip, limit)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	if posts == nil {
		posts = []*model.PostDetailed{}
	}
	httpjson.WriteJSON(w, http.StatusOK, posts)
}
