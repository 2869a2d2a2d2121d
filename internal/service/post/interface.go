package post_service

import (
	"context"

	"inkpost-service/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks/post --outpkg mocks --filename PostService.go
//go:generate mockery --name ListCache --dir . --output ../../../mocks/cache --outpkg mocks --filename ListCache.go

type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	ListVisible(ctx context.Context, skip, limit int) ([]*model.PostDetailed, error)
	Search(ctx context.Context, query string, skip, limit int) ([]*model.PostDetailed, error)
	ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*model.PostDetailed, error)
	DeletePost(ctx context.Context, requesterID, id int64) (*model.Post, error)
}

// ListCache is the read-through cache the decorator sits on. Implementations
// return custom_errors.ErrCacheMiss when a page is absent.
type ListCache interface {
	GetVisiblePage(ctx context.Context, skip, limit int) ([]*model.PostDetailed, error)
	SetVisiblePage(ctx context.Context, skip, limit int, posts []*model.PostDetailed) error
	InvalidateVisiblePages(ctx context.Context) error
	IncrementViews(ctx context.Context, postIDs []int64)
}
