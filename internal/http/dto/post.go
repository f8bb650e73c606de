package dto

import (
	"time"

	"github.com/samber/lo"

	"surfceylon.app/server/internal/model"
)

type CreatePostRequest struct {
	Body string `json:"body" binding:"required,max=10000"`
}

type PostResponse struct {
	ID        int64     `json:"id,string"`
	AuthorID  int64     `json:"author_id,string"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func ToPostResponse(p model.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
	}
}

type PostPageResponse struct {
	Items      []PostResponse `json:"items"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

func ToPostPageResponse(posts []model.Post, nextCursor string) PostPageResponse {
	return PostPageResponse{
		Items:      lo.Map(posts, func(p model.Post, _ int) PostResponse { return ToPostResponse(p) }),
		NextCursor: nextCursor,
	}
}
