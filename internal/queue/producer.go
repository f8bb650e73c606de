package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type EventKind string

const (
	// EventFollowCreated is published when a new follow edge is created
	// (not on idempotent re-follows).
	EventFollowCreated EventKind = "follow.created"
	// EventMessageCreated is published after a message commits with its seq.
	EventMessageCreated EventKind = "message.created"
)

// Event is a notification event flowing from the API server to the worker.
type Event struct {
	Kind      EventKind
	ActorID   int64
	SubjectID int64 // followee for follows, conversation for messages
	MessageID int64 // message events only
	Seq       int64 // message events only
	TraceID   string
	Attempt   int
}

type Producer interface {
	Enqueue(ctx context.Context, ev Event) error
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

func (p *redisProducer) Enqueue(ctx context.Context, ev Event) error {
	attempt := ev.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	fields := map[string]any{
		"kind":       string(ev.Kind),
		"actor_id":   ev.ActorID,
		"subject_id": ev.SubjectID,
		"attempt":    attempt,
	}

	if ev.MessageID != 0 {
		fields["msg_id"] = ev.MessageID
		fields["seq"] = ev.Seq
	}
	if ev.TraceID != "" {
		fields["trace_id"] = ev.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue event: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued event", "kind", ev.Kind, "actor_id", ev.ActorID, "subject_id", ev.SubjectID, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
