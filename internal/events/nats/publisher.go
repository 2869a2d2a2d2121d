package nats_events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"inkpost-service/internal/events"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/model"
)

type Publisher struct {
	conn *nats.Conn
	log  *logger.Logger
}

func NewPublisher(url string, log *logger.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("Connected to NATS", slog.String("url", url))
	return &Publisher{conn: conn, log: log}, nil
}

func (p *Publisher) PostCreated(ctx context.Context, post *model.Post) error {
	event := events.PostCreatedEvent{
		PostID:    post.ID,
		OwnerID:   post.OwnerID,
		Title:     post.Title,
		Timestamp: time.Now().UTC(),
	}
	return p.publish(events.SubjectPostCreated, event)
}

func (p *Publisher) PostDeleted(ctx context.Context, post *model.Post) error {
	event := events.PostDeletedEvent{
		PostID:    post.ID,
		OwnerID:   post.OwnerID,
		Timestamp: time.Now().UTC(),
	}
	return p.publish(events.SubjectPostDeleted, event)
}

func (p *Publisher) publish(subject string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", subject, err)
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", subject, err)
	}

	p.log.Debug("Published event", slog.String("subject", subject))
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
	p.log.Info("NATS connection closed")
}
