package model

import "github.com/jackc/pgx/v5/pgtype"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type PostMedia struct {
	ID        int64              `json:"id"`
	PostID    int64              `json:"post_id"`
	URL       string             `json:"url"`
	Type      MediaType          `json:"type"`
	Position  int32              `json:"position"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type PostMediaInput struct {
	URL      string    `json:"url"`
	Type     MediaType `json:"type"`
	Position int32     `json:"position"`
}
