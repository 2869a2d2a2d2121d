package model

type CreatePostDTO struct {
	OwnerID    int64             `json:"owner_id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Published  *bool             `json:"published,omitempty"`
	MediaItems []*PostMediaInput `json:"media_items,omitempty"`
}
