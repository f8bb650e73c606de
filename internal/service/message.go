package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/common/id"
	"surfceylon.app/server/common/logger"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/queue"
	"surfceylon.app/server/internal/store"
)

type MessageService interface {
	// Send appends a message to the conversation. Seq assignment is atomic:
	// once Send returns the message is durably stored with its final seq.
	Send(ctx context.Context, callerID, conversationID int64, body string) (*model.Message, error)
	// List returns messages newest-first. cursorToken pins the page below a
	// previously returned seq.
	List(ctx context.Context, callerID, conversationID int64, cursorToken string, limit int) (Page[model.Message], error)
	// UnreadCount is the number of messages past the caller's read cursor.
	UnreadCount(ctx context.Context, callerID, conversationID int64) (int64, error)
}

type messageService struct {
	messageStore store.MessageStore
	convStore    store.ConversationStore
	producer     queue.Producer
	timeout      time.Duration
	limits       pageLimits
}

func NewMessageService(messageStore store.MessageStore, convStore store.ConversationStore, producer queue.Producer, timeout time.Duration, defaultLimit, maxLimit int) MessageService {
	return &messageService{
		messageStore: messageStore,
		convStore:    convStore,
		producer:     producer,
		timeout:      timeout,
		limits:       pageLimits{def: defaultLimit, max: maxLimit},
	}
}

func (s *messageService) Send(ctx context.Context, callerID, conversationID int64, body string) (*model.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{CallerID: &callerID, ConversationID: &conversationID})
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	if _, err := requireMember(ctx, s.convStore, callerID, conversationID); err != nil {
		return nil, err
	}

	msg := &model.Message{
		ID:             id.New(),
		ConversationID: conversationID,
		SenderID:       callerID,
		Body:           body,
	}
	if err := s.messageStore.Append(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to append message", "error", err)
		return nil, wrapStorage(fmt.Errorf("appending message: %w", err))
	}

	s.publishMessage(ctx, msg)
	slog.InfoContext(ctx, "message sent", "seq", msg.Seq)
	return msg, nil
}

// publishMessage emits the notification event post-commit; failures only lose
// the notification, never the message.
func (s *messageService) publishMessage(ctx context.Context, msg *model.Message) {
	ev := queue.Event{
		Kind:      queue.EventMessageCreated,
		ActorID:   msg.SenderID,
		SubjectID: msg.ConversationID,
		MessageID: msg.ID,
		Seq:       msg.Seq,
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		ev.TraceID = sc.TraceID().String()
	}
	if err := s.producer.Enqueue(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue message event", "error", err, "msg_id", msg.ID)
	}
}

func (s *messageService) List(ctx context.Context, callerID, conversationID int64, cursorToken string, limit int) (Page[model.Message], error) {
	var beforeSeq int64
	if cursorToken != "" {
		seq, err := cursor.DecodeSeq(cursorToken)
		if err != nil {
			return Page[model.Message]{}, ErrInvalidCursor
		}
		beforeSeq = seq
	}
	limit = s.limits.clamp(limit)

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	if _, err := requireMember(ctx, s.convStore, callerID, conversationID); err != nil {
		return Page[model.Message]{}, err
	}

	messages, err := s.messageStore.ListBefore(ctx, conversationID, beforeSeq, limit)
	if err != nil {
		return Page[model.Message]{}, wrapStorage(fmt.Errorf("listing messages: %w", err))
	}

	page := Page[model.Message]{Items: messages}
	if len(messages) == limit {
		last := messages[len(messages)-1]
		if last.Seq > 1 {
			page.NextCursor = cursor.EncodeSeq(last.Seq)
		}
	}
	return page, nil
}

func (s *messageService) UnreadCount(ctx context.Context, callerID, conversationID int64) (int64, error) {
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	if _, err := requireMember(ctx, s.convStore, callerID, conversationID); err != nil {
		return 0, err
	}

	membership, err := s.convStore.GetMembership(ctx, conversationID, callerID)
	if err != nil {
		return 0, wrapStorage(fmt.Errorf("getting membership: %w", err))
	}
	maxSeq, err := s.messageStore.MaxSeq(ctx, conversationID)
	if err != nil {
		return 0, wrapStorage(fmt.Errorf("reading max seq: %w", err))
	}

	unread := maxSeq - membership.LastReadSeq
	if unread < 0 {
		unread = 0
	}
	return unread, nil
}
