package media_repository_postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/model"
	"inkpost-service/internal/repository/postgres/db"
)

type MediaRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewMediaRepository(db db.PgDB, log *logger.Logger) *MediaRepository {
	return &MediaRepository{db: db, log: log}
}

func (m *MediaRepository) Attach(ctx context.Context, postID int64, media []*model.PostMedia) error {
	if len(media) == 0 {
		return nil
	}

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	query := `
		INSERT INTO post_media (post_id, url, type, position, created_at)
		VALUES (@post_id, @url, @type, @position, @created_at)`

	for _, item := range media {
		args := pgx.NamedArgs{
			"post_id":    postID,
			"url":        item.URL,
			"type":       string(item.Type),
			"position":   item.Position,
			"created_at": now,
		}
		if _, err := m.db.Exec(ctx, query, args); err != nil {
			m.log.Error("Error attaching media to post",
				slog.Int64("post_id", postID),
				slog.String("error", err.Error()))
			return custom_errors.ErrMediaAttachFailed
		}
	}

	return nil
}

func (m *MediaRepository) GetByPost(ctx context.Context, postID int64) ([]*model.PostMedia, error) {
	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT id, post_id, url, type, position, created_at
				FROM post_media WHERE post_id = @post_id ORDER BY position ASC`

	rows, err := m.db.Query(ctx, query, args)
	if err != nil {
		m.log.Error("Error getting media by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrMediaQueryFailed
	}
	defer rows.Close()

	media, err := m.scanMedia(rows)
	if err != nil {
		m.log.Error("Error scanning media", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrMediaQueryFailed
	}
	return media, nil
}

func (m *MediaRepository) GetByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.PostMedia, error) {
	result := make(map[int64][]*model.PostMedia)
	if len(postIDs) == 0 {
		return result, nil
	}

	args := pgx.NamedArgs{"post_ids": postIDs}
	query := `SELECT id, post_id, url, type, position, created_at
				FROM post_media WHERE post_id = ANY(@post_ids)
				ORDER BY post_id ASC, position ASC`

	rows, err := m.db.Query(ctx, query, args)
	if err != nil {
		m.log.Error("Error getting media by posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrMediaQueryFailed
	}
	defer rows.Close()

	media, err := m.scanMedia(rows)
	if err != nil {
		m.log.Error("Error scanning media batch", slog.String("error", err.Error()))
		return nil, custom_errors.ErrMediaQueryFailed
	}

	for _, item := range media {
		result[item.PostID] = append(result[item.PostID], item)
	}
	return result, nil
}

func (m *MediaRepository) scanMedia(rows pgx.Rows) ([]*model.PostMedia, error) {
	var media []*model.PostMedia
	for rows.Next() {
		item := &model.PostMedia{}
		err := rows.Scan(
			&item.ID,
			&item.PostID,
			&item.URL,
			&item.Type,
			&item.Position,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		media = append(media, item)
	}
	return media, rows.Err()
}
