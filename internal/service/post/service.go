package post_service

import (
	"context"
	"errors"
	"log/slog"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/events"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/metrics"
	"inkpost-service/internal/model"
	media_repository "inkpost-service/internal/repository/media"
	post_repository "inkpost-service/internal/repository/post"
	"inkpost-service/internal/repository/postgres"
	user_repository "inkpost-service/internal/repository/user"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type PostService struct {
	postRepo  post_repository.Repository
	mediaRepo media_repository.Repository
	userRepo  user_repository.Repository
	uow       postgres.UnitOfWork
	publisher events.Publisher
	log       *logger.Logger
	metrics   metrics.Provider
}

func NewPostService(
	postRepo post_repository.Repository,
	mediaRepo media_repository.Repository,
	userRepo user_repository.Repository,
	uow postgres.UnitOfWork,
	publisher events.Publisher,
	log *logger.Logger,
	metrics metrics.Provider,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		mediaRepo: mediaRepo,
		userRepo:  userRepo,
		uow:       uow,
		publisher: publisher,
		log:       log,
		metrics:   metrics,
	}
}

// normalizeRange clamps pagination to sane bounds: negative skip becomes 0,
// missing limit becomes the default, oversized limit is capped.
func normalizeRange(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return skip, limit
}

func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (result *model.PostDetailed, err error) {
	if _, err := s.userRepo.GetByID(ctx, post.OwnerID); err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Post owner does not exist", slog.Int64("owner_id", post.OwnerID))
			s.metrics.IncrementPostOperations("create", false)
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to check post owner", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	published := true
	if post.Published != nil {
		published = *post.Published
	}

	createdPost, err := tx.PostRepository().Create(ctx, &model.Post{
		OwnerID:   post.OwnerID,
		Title:     post.Title,
		Content:   post.Content,
		Published: published,
	})
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	var createdMedia []*model.PostMedia
	if len(post.MediaItems) > 0 {
		media := make([]*model.PostMedia, 0, len(post.MediaItems))
		for i, m := range post.MediaItems {
			position := m.Position
			if position < 1 {
				position = int32(i + 1)
			}
			media = append(media, &model.PostMedia{
				PostID:   createdPost.ID,
				URL:      m.URL,
				Type:     m.Type,
				Position: position,
			})
		}
		if err := tx.MediaRepository().Attach(ctx, createdPost.ID, media); err != nil {
			s.log.Error("Failed to attach media to post",
				slog.Int64("post_id", createdPost.ID),
				slog.String("error", err.Error()))
			s.metrics.IncrementPostOperations("create", false)
			return nil, custom_errors.ErrMediaAttachFailed
		}
		createdMedia, err = tx.MediaRepository().GetByPost(ctx, createdPost.ID)
		if err != nil {
			s.log.Error("Failed to get media by post",
				slog.Int64("post_id", createdPost.ID),
				slog.String("error", err.Error()))
			s.metrics.IncrementPostOperations("create", false)
			return nil, custom_errors.ErrMediaQueryFailed
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	if err := s.publisher.PostCreated(ctx, createdPost); err != nil {
		s.log.Warn("Failed to publish post.created event",
			slog.Int64("post_id", createdPost.ID),
			slog.String("error", err.Error()))
	}

	s.log.Info("Created post",
		slog.Int64("post_id", createdPost.ID),
		slog.Int64("owner_id", createdPost.OwnerID))
	s.metrics.IncrementPostOperations("create", true)

	return &model.PostDetailed{Post: createdPost, Media: createdMedia}, nil
}

func (s *PostService) ListVisible(ctx context.Context, skip, limit int) ([]*model.PostDetailed, error) {
	skip, limit = normalizeRange(skip, limit)

	posts, err := s.postRepo.ListVisible(ctx, skip, limit)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("list", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	result, err := s.withMedia(ctx, posts)
	if err != nil {
		s.metrics.IncrementPostOperations("list", false)
		return nil, err
	}

	s.metrics.IncrementPostOperations("list", true)
	return result, nil
}

func (s *PostService) Search(ctx context.Context, query string, skip, limit int) ([]*model.PostDetailed, error) {
	skip, limit = normalizeRange(skip, limit)

	posts, err := s.postRepo.Search(ctx, query, skip, limit)
	if err != nil {
		s.log.Error("Failed to search posts",
			slog.String("query", query),
			slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("search", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	result, err := s.withMedia(ctx, posts)
	if err != nil {
		s.metrics.IncrementPostOperations("search", false)
		return nil, err
	}

	s.metrics.IncrementPostOperations("search", true)
	return result, nil
}

func (s *PostService) ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*model.PostDetailed, error) {
	skip, limit = normalizeRange(skip, limit)

	posts, err := s.postRepo.ListByOwner(ctx, ownerID, skip, limit)
	if err != nil {
		s.log.Error("Failed to list posts by owner",
			slog.Int64("owner_id", ownerID),
			slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("list_by_owner", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	result, err := s.withMedia(ctx, posts)
	if err != nil {
		s.metrics.IncrementPostOperations("list_by_owner", false)
		return nil, err
	}

	s.metrics.IncrementPostOperations("list_by_owner", true)
	return result, nil
}

// DeletePost soft-deletes a post on behalf of requesterID. Not-found is
// checked before ownership, so probing a deleted or absent id never reveals
// whether the post existed.
func (s *PostService) DeletePost(ctx context.Context, requesterID, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			s.metrics.IncrementPostOperations("delete", false)
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for delete",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("delete", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	if post.OwnerID != requesterID {
		s.log.Debug("Requester is not the owner of the post",
			slog.Int64("requester_id", requesterID),
			slog.Int64("owner_id", post.OwnerID))
		s.metrics.IncrementPostOperations("delete", false)
		return nil, custom_errors.ErrForbidden
	}

	deletedPost, err := s.postRepo.SoftDelete(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			// Lost the race against a concurrent delete.
			s.metrics.IncrementPostOperations("delete", false)
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to soft-delete post",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("delete", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := s.publisher.PostDeleted(ctx, deletedPost); err != nil {
		s.log.Warn("Failed to publish post.deleted event",
			slog.Int64("post_id", deletedPost.ID),
			slog.String("error", err.Error()))
	}

	s.log.Info("Soft-deleted post",
		slog.Int64("post_id", deletedPost.ID),
		slog.Int64("owner_id", deletedPost.OwnerID))
	s.metrics.IncrementPostOperations("delete", true)
	return deletedPost, nil
}

func (s *PostService) withMedia(ctx context.Context, posts []*model.Post) ([]*model.PostDetailed, error) {
	ids := make([]int64, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	mediaByPost, err := s.mediaRepo.GetByPosts(ctx, ids)
	if err != nil {
		s.log.Error("Failed to load media for posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrMediaQueryFailed
	}

	result := make([]*model.PostDetailed, 0, len(posts))
	for _, post := range posts {
		result = append(result, &model.PostDetailed{
			Post:  post,
			Media: mediaByPost[post.ID],
		})
	}
	return result, nil
}
