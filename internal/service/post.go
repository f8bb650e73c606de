package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/common/id"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/store"
)

type PostService interface {
	Create(ctx context.Context, authorID int64, body string) (*model.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, cursorToken string, limit int) (Page[model.Post], error)
}

type postService struct {
	postStore store.PostStore
	userStore store.UserStore
	timeout   time.Duration
	limits    pageLimits
}

func NewPostService(postStore store.PostStore, userStore store.UserStore, timeout time.Duration, defaultLimit, maxLimit int) PostService {
	return &postService{
		postStore: postStore,
		userStore: userStore,
		timeout:   timeout,
		limits:    pageLimits{def: defaultLimit, max: maxLimit},
	}
}

func (s *postService) Create(ctx context.Context, authorID int64, body string) (*model.Post, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	post := &model.Post{
		ID:       id.New(),
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.postStore.Create(ctx, post); err != nil {
		slog.ErrorContext(ctx, "failed to create post", "error", err, "author_id", authorID)
		return nil, wrapStorage(fmt.Errorf("creating post: %w", err))
	}
	return post, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID int64, cursorToken string, limit int) (Page[model.Post], error) {
	before, err := decodeKeyCursor(cursorToken)
	if err != nil {
		return Page[model.Post]{}, err
	}
	limit = s.limits.clamp(limit)

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	if _, err := s.userStore.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Page[model.Post]{}, ErrUserNotFound
		}
		return Page[model.Post]{}, wrapStorage(fmt.Errorf("looking up author: %w", err))
	}

	posts, err := s.postStore.ListByAuthors(ctx, []int64{authorID}, before, limit)
	if err != nil {
		return Page[model.Post]{}, wrapStorage(fmt.Errorf("listing posts: %w", err))
	}

	page := Page[model.Post]{Items: posts}
	if len(posts) == limit {
		last := posts[len(posts)-1]
		page.NextCursor = cursor.Encode(cursor.Key{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}
