package media_repository

import (
	"context"

	"inkpost-service/internal/model"
)

//go:generate mockery --name Repository --dir . --output ../../../mocks/media --outpkg mocks --filename MediaRepository.go

type Repository interface {
	Attach(ctx context.Context, postID int64, media []*model.PostMedia) error
	GetByPost(ctx context.Context, postID int64) ([]*model.PostMedia, error)
	GetByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.PostMedia, error)
}
