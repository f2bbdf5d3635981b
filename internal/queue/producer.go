package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/sam3690/syncly/internal/model"
)

// ImportMessage announces a finished import so downstream consumers can
// pick up the new rows.
type ImportMessage struct {
	Provider    model.Provider
	WorkspaceID string
	Imported    int64
	Source      string
	Since       time.Time
}

type Producer interface {
	Publish(ctx context.Context, msg ImportMessage) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// NewRedisProducerFromURL parses a redis:// URL and builds a producer on it.
func NewRedisProducerFromURL(url, stream string, logger *slog.Logger) (Producer, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return NewRedisProducer(redis.NewClient(opts), stream, logger), nil
}

func (p *redisProducer) Publish(ctx context.Context, msg ImportMessage) error {
	fields := map[string]any{
		"provider":     string(msg.Provider),
		"workspace_id": msg.WorkspaceID,
		"imported":     msg.Imported,
		"source":       msg.Source,
		"since":        msg.Since.UTC().Format(time.RFC3339),
	}
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		fields["trace_id"] = span.SpanContext().TraceID().String()
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("publish import: %w", err)
	}

	p.logger.InfoContext(ctx, "published import notification",
		"provider", msg.Provider, "source", msg.Source, "imported", msg.Imported)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

type noopProducer struct{}

// NewNoopProducer is used when no pipeline is configured.
func NewNoopProducer() Producer {
	return noopProducer{}
}

func (noopProducer) Publish(context.Context, ImportMessage) error { return nil }

func (noopProducer) Close() error { return nil }
