package model

import "time"

// FollowEdge is a directed follow relationship. Unique on (FollowerID,
// FolloweeID); never mutated after creation.
type FollowEdge struct {
	FollowerID int64     `json:"follower_id"`
	FolloweeID int64     `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
