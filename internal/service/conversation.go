package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"surfceylon.app/server/common/id"
	"surfceylon.app/server/common/logger"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/store"
)

type ConversationService interface {
	// Open resolves or creates the conversation for the caller plus the given
	// members. Two members resolve to the one direct conversation for the
	// pair; three or more always create a fresh group.
	Open(ctx context.Context, callerID int64, memberIDs []int64) (*model.Conversation, error)
	// Get returns the conversation if the caller is a member.
	Get(ctx context.Context, callerID, conversationID int64) (*model.Conversation, error)
	// MarkRead advances the caller's read cursor to seq and returns the
	// resulting cursor. The cursor never moves backward; seq past the newest
	// message is rejected.
	MarkRead(ctx context.Context, callerID, conversationID, seq int64) (int64, error)
}

type conversationService struct {
	convStore    store.ConversationStore
	messageStore store.MessageStore
	userStore    store.UserStore
	timeout      time.Duration
	maxMembers   int
}

func NewConversationService(convStore store.ConversationStore, messageStore store.MessageStore, userStore store.UserStore, timeout time.Duration, maxMembers int) ConversationService {
	return &conversationService{
		convStore:    convStore,
		messageStore: messageStore,
		userStore:    userStore,
		timeout:      timeout,
		maxMembers:   maxMembers,
	}
}

func (s *conversationService) Open(ctx context.Context, callerID int64, memberIDs []int64) (*model.Conversation, error) {
	members := lo.Uniq(append([]int64{callerID}, memberIDs...))
	if len(members) < 2 {
		if len(memberIDs) > 0 {
			return nil, ErrSelfConversation
		}
		return nil, ErrTooFewMembers
	}
	if s.maxMembers > 0 && len(members) > s.maxMembers {
		return nil, ErrTooManyMembers
	}

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	for _, memberID := range members {
		if memberID == callerID {
			continue
		}
		if _, err := s.userStore.GetByID(ctx, memberID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, wrapStorage(fmt.Errorf("looking up member %d: %w", memberID, err))
		}
	}

	conv := &model.Conversation{
		ID:        id.New(),
		MemberIDs: members,
	}

	if len(members) == 2 {
		key := model.DirectKey(members[0], members[1])
		conv.DirectKey = &key
		if err := s.convStore.UpsertDirect(ctx, conv); err != nil {
			slog.ErrorContext(ctx, "failed to resolve direct conversation", "error", err)
			return nil, wrapStorage(fmt.Errorf("resolving direct conversation: %w", err))
		}
		return conv, nil
	}

	if err := s.convStore.CreateGroup(ctx, conv); err != nil {
		slog.ErrorContext(ctx, "failed to create group conversation", "error", err)
		return nil, wrapStorage(fmt.Errorf("creating group conversation: %w", err))
	}
	slog.InfoContext(ctx, "group conversation created",
		"conversation_id", conv.ID,
		"member_count", len(members),
	)
	return conv, nil
}

func (s *conversationService) Get(ctx context.Context, callerID, conversationID int64) (*model.Conversation, error) {
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	conv, err := requireMember(ctx, s.convStore, callerID, conversationID)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *conversationService) MarkRead(ctx context.Context, callerID, conversationID, seq int64) (int64, error) {
	if seq < 0 {
		return 0, ErrSeqBeyondMax
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{ConversationID: &conversationID})
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	if _, err := requireMember(ctx, s.convStore, callerID, conversationID); err != nil {
		return 0, err
	}

	maxSeq, err := s.messageStore.MaxSeq(ctx, conversationID)
	if err != nil {
		return 0, wrapStorage(fmt.Errorf("reading max seq: %w", err))
	}
	if seq > maxSeq {
		return 0, ErrSeqBeyondMax
	}

	current, err := s.convStore.AdvanceReadCursor(ctx, conversationID, callerID, seq)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrNotAMember
		}
		slog.ErrorContext(ctx, "failed to advance read cursor", "error", err, "seq", seq)
		return 0, wrapStorage(fmt.Errorf("advancing read cursor: %w", err))
	}
	return current, nil
}

// requireMember distinguishes an unknown conversation (not found) from an
// existing one the caller is outside of (not a member).
func requireMember(ctx context.Context, convStore store.ConversationStore, callerID, conversationID int64) (*model.Conversation, error) {
	conv, err := convStore.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, wrapStorage(fmt.Errorf("getting conversation: %w", err))
	}

	member, err := convStore.IsMember(ctx, conversationID, callerID)
	if err != nil {
		return nil, wrapStorage(fmt.Errorf("checking membership: %w", err))
	}
	if !member {
		return nil, ErrNotAMember
	}
	return conv, nil
}
