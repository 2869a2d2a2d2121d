package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/model"
)

type PostRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	nextID int64
}

func NewPostRepository(log *logger.Logger) *PostRepository {
	return &PostRepository{
		log:    log,
		posts:  make(map[int64]*model.Post),
		nextID: 1,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	newPost := &model.Post{
		ID:        p.nextID,
		OwnerID:   post.OwnerID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		CreatedAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	p.nextID++

	p.posts[newPost.ID] = newPost

	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists || post.DeletedAt.Valid {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) ListVisible(ctx context.Context, skip, limit int) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.collect(func(post *model.Post) bool {
		return !post.DeletedAt.Valid
	}, skip, limit), nil
}

func (p *PostRepository) Search(ctx context.Context, query string, skip, limit int) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	needle := strings.ToLower(query)
	return p.collect(func(post *model.Post) bool {
		if post.DeletedAt.Valid {
			return false
		}
		return strings.Contains(strings.ToLower(post.Title), needle) ||
			strings.Contains(strings.ToLower(post.Content), needle)
	}, skip, limit), nil
}

func (p *PostRepository) ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.collect(func(post *model.Post) bool {
		return !post.DeletedAt.Valid && post.OwnerID == ownerID
	}, skip, limit), nil
}

func (p *PostRepository) SoftDelete(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists || post.DeletedAt.Valid {
		return nil, custom_errors.ErrPostNotFound
	}

	post.DeletedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	result := *post
	return &result, nil
}

// collect filters, orders by id ascending and applies skip/limit. Callers hold
// at least a read lock.
func (p *PostRepository) collect(match func(*model.Post) bool, skip, limit int) []*model.Post {
	var filtered []*model.Post
	for _, post := range p.posts {
		if match(post) {
			filtered = append(filtered, post)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ID < filtered[j].ID
	})

	if skip >= len(filtered) {
		return nil
	}
	filtered = filtered[skip:]
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}

	result := make([]*model.Post, 0, len(filtered))
	for _, post := range filtered {
		postCopy := *post
		result = append(result, &postCopy)
	}
	return result
}
