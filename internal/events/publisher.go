package events

import (
	"context"
	"time"

	"inkpost-service/internal/model"
)

const (
	SubjectPostCreated = "post.created"
	SubjectPostDeleted = "post.deleted"
)

//go:generate mockery --name Publisher --dir . --output ../../mocks/events --outpkg mocks --filename Publisher.go

// Publisher emits lifecycle notifications for posts. Publishing is
// best-effort: callers log failures and never fail the request over them.
type Publisher interface {
	PostCreated(ctx context.Context, post *model.Post) error
	PostDeleted(ctx context.Context, post *model.Post) error
	Close()
}

type PostCreatedEvent struct {
	PostID    int64     `json:"post_id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

type PostDeletedEvent struct {
	PostID    int64     `json:"post_id"`
	OwnerID   int64     `json:"owner_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NoopPublisher is used when no broker is configured, and in tests.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PostCreated(ctx context.Context, post *model.Post) error { return nil }
func (NoopPublisher) PostDeleted(ctx context.Context, post *model.Post) error { return nil }
func (NoopPublisher) Close()                                                  {}
