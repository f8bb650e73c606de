package model

import "time"

// Notification kinds.
const (
	NotificationFollow  = "follow"
	NotificationMessage = "message"
)

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Kind      string    `json:"kind"`
	ActorID   int64     `json:"actor_id"`
	SubjectID *int64    `json:"subject_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
