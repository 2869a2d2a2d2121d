package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/metrics"
	"inkpost-service/internal/model"
)

// PostServiceCacheDecorator serves the public listing from Redis when a fresh
// page exists and invalidates cached pages whenever a post is created or
// deleted. Every other operation passes straight through.
type PostServiceCacheDecorator struct {
	service Service
	cache   ListCache
	log     *logger.Logger
	metrics metrics.Provider
}

func NewPostServiceCacheDecorator(
	service Service,
	cache ListCache,
	log *logger.Logger,
	metrics metrics.Provider,
) Service {
	return &PostServiceCacheDecorator{
		service: service,
		cache:   cache,
		log:     log,
		metrics: metrics,
	}
}

func (d *PostServiceCacheDecorator) ListVisible(ctx context.Context, skip, limit int) ([]*model.PostDetailed, error) {
	start := time.Now()
	cached, err := d.cache.GetVisiblePage(ctx, skip, limit)
	d.metrics.RecordCacheOperationDuration("list_get", time.Since(start))
	if err == nil {
		d.metrics.IncrementCacheHits()
		d.bumpViews(ctx, cached)
		return cached, nil
	}

	if errors.Is(err, custom_errors.ErrCacheMiss) {
		d.metrics.IncrementCacheMisses()
	} else {
		d.log.Warn("Failed to read list page from cache", slog.String("error", err.Error()))
	}

	posts, err := d.service.ListVisible(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	setStart := time.Now()
	if err := d.cache.SetVisiblePage(ctx, skip, limit, posts); err != nil {
		d.log.Warn("Failed to cache list page", slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("list_set", time.Since(setStart))

	d.bumpViews(ctx, posts)
	return posts, nil
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx)
	return result, nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, requesterID, id int64) (*model.Post, error) {
	result, err := d.service.DeletePost(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx)
	return result, nil
}

func (d *PostServiceCacheDecorator) Search(ctx context.Context, query string, skip, limit int) ([]*model.PostDetailed, error) {
	return d.service.Search(ctx, query, skip, limit)
}

func (d *PostServiceCacheDecorator) ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*model.PostDetailed, error) {
	return d.service.ListByOwner(ctx, ownerID, skip, limit)
}

func (d *PostServiceCacheDecorator) invalidate(ctx context.Context) {
	if err := d.cache.InvalidateVisiblePages(ctx); err != nil {
		d.log.Warn("Failed to invalidate cached list pages", slog.String("error", err.Error()))
	}
}

func (d *PostServiceCacheDecorator) bumpViews(ctx context.Context, posts []*model.PostDetailed) {
	if len(posts) == 0 {
		return
	}
	ids := make([]int64, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.Post.ID)
	}
	d.cache.IncrementViews(ctx, ids)
}
