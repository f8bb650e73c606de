package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/queue"
	"surfceylon.app/server/internal/store"
)

// Page bundles a page of results with the token for the next one.
// NextCursor is empty when there is no further page to request.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

type FollowService interface {
	// Follow creates the edge follower -> followee. Re-following is an
	// idempotent success, not an error.
	Follow(ctx context.Context, followerID, followeeID int64) error
	// Unfollow removes the edge if present; a missing edge is a no-op.
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, a, b int64) (bool, error)
	IsMutual(ctx context.Context, a, b int64) (bool, error)
	Followers(ctx context.Context, of int64, cursorToken string, limit int) (Page[model.FollowEdge], error)
	Following(ctx context.Context, of int64, cursorToken string, limit int) (Page[model.FollowEdge], error)
}

type followService struct {
	followStore store.FollowStore
	userStore   store.UserStore
	producer    queue.Producer
	timeout     time.Duration
	pageLimits  pageLimits
}

func NewFollowService(followStore store.FollowStore, userStore store.UserStore, producer queue.Producer, timeout time.Duration, defaultLimit, maxLimit int) FollowService {
	return &followService{
		followStore: followStore,
		userStore:   userStore,
		producer:    producer,
		timeout:     timeout,
		pageLimits:  pageLimits{def: defaultLimit, max: maxLimit},
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	if _, err := s.userStore.GetByID(ctx, followeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return wrapStorage(fmt.Errorf("looking up followee: %w", err))
	}

	created, err := s.followStore.Create(ctx, followerID, followeeID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create follow edge",
			"error", err,
			"follower_id", followerID,
			"followee_id", followeeID,
		)
		return wrapStorage(fmt.Errorf("creating follow edge: %w", err))
	}

	if created {
		s.publishFollow(ctx, followerID, followeeID)
		slog.InfoContext(ctx, "follow edge created", "follower_id", followerID, "followee_id", followeeID)
	}
	return nil
}

// publishFollow emits the notification event. Delivery is best-effort: the
// edge is already committed, so a queue failure only loses the notification.
func (s *followService) publishFollow(ctx context.Context, followerID, followeeID int64) {
	ev := queue.Event{
		Kind:      queue.EventFollowCreated,
		ActorID:   followerID,
		SubjectID: followeeID,
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		ev.TraceID = sc.TraceID().String()
	}
	if err := s.producer.Enqueue(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue follow event", "error", err, "followee_id", followeeID)
	}
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	if _, err := s.userStore.GetByID(ctx, followeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return wrapStorage(fmt.Errorf("looking up followee: %w", err))
	}

	if err := s.followStore.Delete(ctx, followerID, followeeID); err != nil {
		return wrapStorage(fmt.Errorf("deleting follow edge: %w", err))
	}
	return nil
}

func (s *followService) IsFollowing(ctx context.Context, a, b int64) (bool, error) {
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	following, err := s.followStore.Exists(ctx, a, b)
	return following, wrapStorage(err)
}

func (s *followService) IsMutual(ctx context.Context, a, b int64) (bool, error) {
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	forward, err := s.followStore.Exists(ctx, a, b)
	if err != nil || !forward {
		return false, wrapStorage(err)
	}
	backward, err := s.followStore.Exists(ctx, b, a)
	return backward, wrapStorage(err)
}

func (s *followService) Followers(ctx context.Context, of int64, cursorToken string, limit int) (Page[model.FollowEdge], error) {
	return s.listEdges(ctx, cursorToken, limit, func(ctx context.Context, before *cursor.Key, limit int) ([]model.FollowEdge, error) {
		return s.followStore.Followers(ctx, of, before, limit)
	}, func(e model.FollowEdge) int64 { return e.FollowerID })
}

func (s *followService) Following(ctx context.Context, of int64, cursorToken string, limit int) (Page[model.FollowEdge], error) {
	return s.listEdges(ctx, cursorToken, limit, func(ctx context.Context, before *cursor.Key, limit int) ([]model.FollowEdge, error) {
		return s.followStore.Following(ctx, of, before, limit)
	}, func(e model.FollowEdge) int64 { return e.FolloweeID })
}

func (s *followService) listEdges(
	ctx context.Context,
	cursorToken string,
	limit int,
	list func(ctx context.Context, before *cursor.Key, limit int) ([]model.FollowEdge, error),
	tieBreak func(model.FollowEdge) int64,
) (Page[model.FollowEdge], error) {
	before, err := decodeKeyCursor(cursorToken)
	if err != nil {
		return Page[model.FollowEdge]{}, err
	}
	limit = s.pageLimits.clamp(limit)

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	edges, err := list(ctx, before, limit)
	if err != nil {
		return Page[model.FollowEdge]{}, wrapStorage(fmt.Errorf("listing follow edges: %w", err))
	}

	page := Page[model.FollowEdge]{Items: edges}
	if len(edges) == limit {
		last := edges[len(edges)-1]
		page.NextCursor = cursor.Encode(cursor.Key{CreatedAt: last.CreatedAt, ID: tieBreak(last)})
	}
	return page, nil
}

type pageLimits struct {
	def int
	max int
}

func (l pageLimits) clamp(limit int) int {
	if limit <= 0 {
		return l.def
	}
	if limit > l.max {
		return l.max
	}
	return limit
}

func decodeKeyCursor(token string) (*cursor.Key, error) {
	if token == "" {
		return nil, nil
	}
	key, err := cursor.Decode(token)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	return &key, nil
}

func boundStorage(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
