package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"inkpost-service/internal/logger"
	"inkpost-service/internal/model"
)

type MediaRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	byPost map[int64][]*model.PostMedia
	nextID int64
}

func NewMediaRepository(log *logger.Logger) *MediaRepository {
	return &MediaRepository{
		log:    log,
		byPost: make(map[int64][]*model.PostMedia),
		nextID: 1,
	}
}

func (m *MediaRepository) Attach(ctx context.Context, postID int64, media []*model.PostMedia) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	for _, item := range media {
		stored := &model.PostMedia{
			ID:        m.nextID,
			PostID:    postID,
			URL:       item.URL,
			Type:      item.Type,
			Position:  item.Position,
			CreatedAt: now,
		}
		m.nextID++
		m.byPost[postID] = append(m.byPost[postID], stored)
	}
	return nil
}

func (m *MediaRepository) GetByPost(ctx context.Context, postID int64) ([]*model.PostMedia, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.PostMedia, 0, len(m.byPost[postID]))
	for _, item := range m.byPost[postID] {
		itemCopy := *item
		result = append(result, &itemCopy)
	}
	return result, nil
}

func (m *MediaRepository) GetByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.PostMedia, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[int64][]*model.PostMedia)
	for _, postID := range postIDs {
		for _, item := range m.byPost[postID] {
			itemCopy := *item
			result[postID] = append(result[postID], &itemCopy)
		}
	}
	return result, nil
}
