package dto

import (
	"time"

	"github.com/samber/lo"

	"surfceylon.app/server/internal/model"
)

type OpenConversationRequest struct {
	// MemberIDs are the other participants; the caller is always included.
	MemberIDs []int64 `json:"member_ids" binding:"required,min=1"`
}

type MarkReadRequest struct {
	Seq int64 `json:"seq" binding:"min=0"`
}

// MarkReadResponse carries the cursor after the advance; an attempt to move
// backward echoes the unchanged cursor.
type MarkReadResponse struct {
	Seq int64 `json:"seq"`
}

type ConversationResponse struct {
	ID        int64     `json:"id,string"`
	Direct    bool      `json:"direct"`
	MemberIDs []string  `json:"member_ids"`
	CreatedAt time.Time `json:"created_at"`
}

func ToConversationResponse(conv *model.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:        conv.ID,
		Direct:    conv.IsDirect(),
		MemberIDs: lo.Map(conv.MemberIDs, func(id int64, _ int) string { return formatID(id) }),
		CreatedAt: conv.CreatedAt,
	}
}
