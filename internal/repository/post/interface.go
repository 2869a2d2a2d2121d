package post_repository

import (
	"context"

	"inkpost-service/internal/model"
)

//go:generate mockery --name Repository --dir . --output ../../../mocks/post --outpkg mocks --filename PostRepository.go

// Repository exposes post persistence. Soft-deleted posts are invisible to
// every method here: GetByID and SoftDelete treat them exactly like missing
// rows, and the listing methods filter them out.
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	ListVisible(ctx context.Context, skip, limit int) ([]*model.Post, error)
	Search(ctx context.Context, query string, skip, limit int) ([]*model.Post, error)
	ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*model.Post, error)
	SoftDelete(ctx context.Context, id int64) (*model.Post, error)
}
