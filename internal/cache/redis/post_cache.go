package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkpost-service/internal/logger"
	"inkpost-service/internal/model"
)

const (
	visibleListKeyPrefix = "posts:visible:"
	visibleListTTL       = 1 * time.Minute
	viewCountKeyPrefix   = "post:views:"
)

// commands is the slice of the cache client PostCache uses.
type commands interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// PostCache holds short-lived pages of the public listing plus per-post view
// counters. Entries are best-effort: callers must treat any error as a miss.
type PostCache struct {
	client commands
	log    *logger.Logger
}

func NewPostCache(client *Client, log *logger.Logger) *PostCache {
	return &PostCache{client: client, log: log}
}

func visiblePageKey(skip, limit int) string {
	return fmt.Sprintf("%s%d:%d", visibleListKeyPrefix, skip, limit)
}

func (c *PostCache) GetVisiblePage(ctx context.Context, skip, limit int) ([]*model.PostDetailed, error) {
	var posts []*model.PostDetailed
	if err := c.client.Get(ctx, visiblePageKey(skip, limit), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *PostCache) SetVisiblePage(ctx context.Context, skip, limit int, posts []*model.PostDetailed) error {
	return c.client.Set(ctx, visiblePageKey(skip, limit), posts, visibleListTTL)
}

func (c *PostCache) InvalidateVisiblePages(ctx context.Context) error {
	return c.client.DeletePattern(ctx, visibleListKeyPrefix+"*")
}

// IncrementViews bumps the view counter of every listed post. A failed INCR is
// logged and skipped; the remaining counters still get their bump.
func (c *PostCache) IncrementViews(ctx context.Context, postIDs []int64) {
	for _, id := range postIDs {
		if _, err := c.client.Incr(ctx, fmt.Sprintf("%s%d", viewCountKeyPrefix, id)); err != nil {
			c.log.Warn("Failed to increment post view counter",
				slog.Int64("post_id", id),
				slog.String("error", err.Error()))
		}
	}
}
