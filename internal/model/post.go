package model

import "github.com/jackc/pgx/v5/pgtype"

type Post struct {
	ID        int64              `json:"id"`
	OwnerID   int64              `json:"owner_id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Published bool               `json:"published"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	// DeletedAt is invalid (null) while the post is live. A soft-deleted post
	// keeps its row but is excluded from every listing.
	DeletedAt pgtype.Timestamptz `json:"deleted_at,omitempty"`
}

type PostDetailed struct {
	Post  *Post        `json:"post"`
	Media []*PostMedia `json:"media,omitempty"`
}
