package dto

import (
	"time"

	"github.com/samber/lo"

	"surfceylon.app/server/internal/model"
)

type FollowEdgeResponse struct {
	FollowerID int64     `json:"follower_id,string"`
	FolloweeID int64     `json:"followee_id,string"`
	CreatedAt  time.Time `json:"created_at"`
}

type FollowPageResponse struct {
	Items      []FollowEdgeResponse `json:"items"`
	NextCursor string               `json:"nextCursor,omitempty"`
}

func ToFollowPageResponse(edges []model.FollowEdge, nextCursor string) FollowPageResponse {
	return FollowPageResponse{
		Items: lo.Map(edges, func(e model.FollowEdge, _ int) FollowEdgeResponse {
			return FollowEdgeResponse{
				FollowerID: e.FollowerID,
				FolloweeID: e.FolloweeID,
				CreatedAt:  e.CreatedAt,
			}
		}),
		NextCursor: nextCursor,
	}
}

type FollowStatusResponse struct {
	Following bool `json:"following"`
	Mutual    bool `json:"mutual"`
}

// FollowStateResponse acknowledges a follow or unfollow with the resulting
// edge state.
type FollowStateResponse struct {
	Following bool `json:"following"`
}
