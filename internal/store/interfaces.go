package store

import (
	"context"
	"errors"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	// Update is last-write-wins on profile fields
	Update(ctx context.Context, user *model.User) error
}

// FollowStore defines the contract for follow edge data access.
// Edges between disjoint pairs are independent; duplicate-edge races on the
// same pair are resolved by the storage layer (idempotent upsert/delete).
type FollowStore interface {
	// Create inserts the edge if absent and reports whether it was created.
	Create(ctx context.Context, followerID, followeeID int64) (bool, error)
	// Delete removes the edge; a missing edge is not an error.
	Delete(ctx context.Context, followerID, followeeID int64) error
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	FollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
	// Followers lists edges pointing at of, ordered (created_at DESC, follower_id DESC),
	// starting strictly after the keyset position when before is non-nil.
	Followers(ctx context.Context, of int64, before *cursor.Key, limit int) ([]model.FollowEdge, error)
	// Following lists edges leaving of, ordered (created_at DESC, followee_id DESC).
	Following(ctx context.Context, of int64, before *cursor.Key, limit int) ([]model.FollowEdge, error)
}

// PostStore defines the contract for post data access.
// Posts are an append-only log keyed by author.
type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	// ListByAuthors lists posts by any of the given authors, ordered
	// (created_at DESC, id DESC), starting strictly after before when non-nil.
	ListByAuthors(ctx context.Context, authorIDs []int64, before *cursor.Key, limit int) ([]model.Post, error)
}

// ConversationStore defines the contract for conversation and read cursor data
// access. It exclusively owns Conversation and Membership lifecycle.
type ConversationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Conversation, error)
	// UpsertDirect resolves the direct conversation for conv.DirectKey,
	// creating it atomically if absent. Race-safe: concurrent first-contact
	// requests from both members resolve to the same row. On return conv
	// reflects the stored conversation.
	UpsertDirect(ctx context.Context, conv *model.Conversation) error
	CreateGroup(ctx context.Context, conv *model.Conversation) error
	IsMember(ctx context.Context, conversationID, memberID int64) (bool, error)
	MemberIDs(ctx context.Context, conversationID int64) ([]int64, error)
	GetMembership(ctx context.Context, conversationID, memberID int64) (*model.Membership, error)
	// AdvanceReadCursor sets last_read_seq = max(current, seq) and returns the
	// resulting value. Moving the cursor backward is a silent no-op.
	AdvanceReadCursor(ctx context.Context, conversationID, memberID, seq int64) (int64, error)
}

// MessageStore defines the contract for message data access. Append assigns
// seq atomically; no intermediate state is observable.
type MessageStore interface {
	// Append stores msg with seq = current max + 1 for its conversation,
	// as a single atomic unit. On return msg.Seq is set.
	Append(ctx context.Context, msg *model.Message) error
	MaxSeq(ctx context.Context, conversationID int64) (int64, error)
	// ListBefore lists messages ordered seq DESC, strictly below beforeSeq.
	// beforeSeq <= 0 means "from the latest".
	ListBefore(ctx context.Context, conversationID, beforeSeq int64, limit int) ([]model.Message, error)
}

// NotificationStore defines the contract for notification data access
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID int64, before *cursor.Key, limit int) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
}
