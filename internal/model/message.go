package model

import "time"

// Message is one entry in a conversation. Seq is strictly increasing and
// gapless per conversation, assigned atomically at append time.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Body           string    `json:"body"`
	Seq            int64     `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}
