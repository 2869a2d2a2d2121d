package post_http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/delivery/http/middleware"
	"inkpost-service/internal/model"
)

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
}

type CreatePostHandler struct {
	postService PostCreator
	validate    *validator.Validate
}

func NewCreatePostHandler(postService PostCreator, validate *validator.Validate) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		validate:    validate,
	}
}

type CreatePostRequest struct {
	Title      string           `json:"title" validate:"required,min=1,max=255"`
	Content    string           `json:"content" validate:"required,min=1"`
	Published  *bool            `json:"published"`
	MediaItems []MediaInputItem `json:"media_items" validate:"omitempty,max=9,dive"`
}

type MediaInputItem struct {
	URL      string `json:"url" validate:"required,url"`
	Type     string `json:"type" validate:"required,oneof=image video"`
	Position int32  `json:"position" validate:"gte=0,lte=9"`
}

func (h *CreatePostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpjson.WriteError(w, custom_errors.ErrUnauthenticated)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, custom_errors.ErrInvalidInput)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		httpjson.WriteValidationError(w, err)
		return
	}

	mediaItems := make([]*model.PostMediaInput, 0, len(req.MediaItems))
	for _, m := range req.MediaItems {
		mediaItems = append(mediaItems, &model.PostMediaInput{
			URL:      m.URL,
			Type:     model.MediaType(m.Type),
			Position: m.Position,
		})
	}

	post, err := h.postService.CreatePost(r.Context(), &model.CreatePostDTO{
		OwnerID:    userID,
		Title:      req.Title,
		Content:    req.Content,
		Published:  req.Published,
		MediaItems: mediaItems,
	})
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, post)
}
