package dto

import (
	"time"

	"github.com/samber/lo"

	"surfceylon.app/server/internal/model"
)

type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=10000"`
}

type MessageResponse struct {
	ID             int64     `json:"id,string"`
	ConversationID int64     `json:"conversation_id,string"`
	SenderID       int64     `json:"sender_id,string"`
	Body           string    `json:"body"`
	Seq            int64     `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToMessageResponse(m model.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		Seq:            m.Seq,
		CreatedAt:      m.CreatedAt,
	}
}

type MessagePageResponse struct {
	Items      []MessageResponse `json:"items"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

func ToMessagePageResponse(messages []model.Message, nextCursor string) MessagePageResponse {
	return MessagePageResponse{
		Items:      lo.Map(messages, func(m model.Message, _ int) MessageResponse { return ToMessageResponse(m) }),
		NextCursor: nextCursor,
	}
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
