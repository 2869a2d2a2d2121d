package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/model"
	"inkpost-service/internal/repository/postgres/db"
)

const postColumns = "id, owner_id, title, content, published, created_at, deleted_at"

type PostRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewPostRepository(db db.PgDB, log *logger.Logger) *PostRepository {
	return &PostRepository{db: db, log: log}
}

func scanPost(row pgx.Row) (*model.Post, error) {
	post := &model.Post{}
	err := row.Scan(
		&post.ID,
		&post.OwnerID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.CreatedAt,
		&post.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"owner_id":   post.OwnerID,
		"title":      post.Title,
		"content":    post.Content,
		"published":  post.Published,
		"created_at": now,
	}

	query := `
		INSERT INTO posts (owner_id, title, content, published, created_at)
		VALUES (@owner_id, @title, @content, @published, @created_at)
		RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + postColumns + `
				FROM posts WHERE id = @id AND deleted_at IS NULL`

	post, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return post, nil
}

func (p *PostRepository) ListVisible(ctx context.Context, skip, limit int) ([]*model.Post, error) {
	args := pgx.NamedArgs{"skip": skip, "limit": limit}
	query := `SELECT ` + postColumns + `
				FROM posts WHERE deleted_at IS NULL
				ORDER BY id ASC OFFSET @skip LIMIT @limit`

	return p.queryPosts(ctx, "ListVisible", query, args)
}

func (p *PostRepository) Search(ctx context.Context, searchQuery string, skip, limit int) ([]*model.Post, error) {
	args := pgx.NamedArgs{
		"pattern": "%" + searchQuery + "%",
		"skip":    skip,
		"limit":   limit,
	}
	query := `SELECT ` + postColumns + `
				FROM posts
				WHERE deleted_at IS NULL AND (title ILIKE @pattern OR content ILIKE @pattern)
				ORDER BY id ASC OFFSET @skip LIMIT @limit`

	return p.queryPosts(ctx, "Search", query, args)
}

func (p *PostRepository) ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*model.Post, error) {
	args := pgx.NamedArgs{"owner_id": ownerID, "skip": skip, "limit": limit}
	query := `SELECT ` + postColumns + `
				FROM posts WHERE deleted_at IS NULL AND owner_id = @owner_id
				ORDER BY id ASC OFFSET @skip LIMIT @limit`

	return p.queryPosts(ctx, "ListByOwner", query, args)
}

// SoftDelete stamps deleted_at exactly once. The deleted_at IS NULL guard makes
// concurrent deletes race to a single terminal write; the loser sees zero rows
// and reports not-found, same as a delete of an absent post.
func (p *PostRepository) SoftDelete(ctx context.Context, id int64) (*model.Post, error) {
	args := pgx.NamedArgs{
		"id":         id,
		"deleted_at": pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	query := `UPDATE posts SET deleted_at = @deleted_at
				WHERE id = @id AND deleted_at IS NULL
				RETURNING ` + postColumns

	post, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found or already deleted", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error soft-deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return post, nil
}

func (p *PostRepository) queryPosts(ctx context.Context, op, query string, args pgx.NamedArgs) ([]*model.Post, error) {
	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error listing posts", slog.String("op", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			p.log.Error("Error scanning post", slog.String("op", op), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		p.log.Error("Error iterating rows", slog.String("op", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return posts, nil
}
