package model

import (
	"fmt"
	"time"
)

// Conversation is a thread between two or more members. Direct (2-member)
// conversations carry a DirectKey derived from the unordered member pair, so
// there is exactly one direct conversation per pair. Group conversations have
// no key; every group create yields a distinct conversation.
type Conversation struct {
	ID        int64     `json:"id"`
	DirectKey *string   `json:"-"`
	MemberIDs []int64   `json:"member_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// IsDirect reports whether this is a 2-member direct conversation.
func (c *Conversation) IsDirect() bool {
	return c.DirectKey != nil
}

// DirectKey normalizes an unordered pair of identities to a stable lookup key.
// Both (a, b) and (b, a) produce the same key.
func DirectKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Membership is one member's row in a conversation, carrying their read
// position. LastReadSeq is monotonically non-decreasing.
type Membership struct {
	ConversationID int64     `json:"conversation_id"`
	MemberID       int64     `json:"member_id"`
	LastReadSeq    int64     `json:"last_read_seq"`
	CreatedAt      time.Time `json:"created_at"`
}
