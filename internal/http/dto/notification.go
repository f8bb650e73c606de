package dto

import (
	"time"

	"github.com/samber/lo"

	"surfceylon.app/server/internal/model"
)

type NotificationResponse struct {
	ID        int64     `json:"id,string"`
	Kind      string    `json:"kind"`
	ActorID   int64     `json:"actor_id,string"`
	SubjectID *string   `json:"subject_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationPageResponse struct {
	Items      []NotificationResponse `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

func ToNotificationPageResponse(notifications []model.Notification, nextCursor string) NotificationPageResponse {
	return NotificationPageResponse{
		Items: lo.Map(notifications, func(n model.Notification, _ int) NotificationResponse {
			resp := NotificationResponse{
				ID:        n.ID,
				Kind:      n.Kind,
				ActorID:   n.ActorID,
				Read:      n.Read,
				CreatedAt: n.CreatedAt,
			}
			if n.SubjectID != nil {
				subject := formatID(*n.SubjectID)
				resp.SubjectID = &subject
			}
			return resp
		}),
		NextCursor: nextCursor,
	}
}
