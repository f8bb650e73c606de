package service

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/store"
)

type FeedService interface {
	// Timeline assembles the reverse-chronological feed of posts authored by
	// users the caller follows. The caller's own posts are not included.
	Timeline(ctx context.Context, userID int64, cursorToken string, limit int) (Page[model.Post], error)
}

type feedService struct {
	followStore store.FollowStore
	postStore   store.PostStore
	timeout     time.Duration
	chunkSize   int
	limits      pageLimits
}

func NewFeedService(followStore store.FollowStore, postStore store.PostStore, timeout time.Duration, chunkSize, defaultLimit, maxLimit int) FeedService {
	if chunkSize <= 0 {
		chunkSize = 100
	}
	return &feedService{
		followStore: followStore,
		postStore:   postStore,
		timeout:     timeout,
		chunkSize:   chunkSize,
		limits:      pageLimits{def: defaultLimit, max: maxLimit},
	}
}

func (s *feedService) Timeline(ctx context.Context, userID int64, cursorToken string, limit int) (Page[model.Post], error) {
	before, err := decodeKeyCursor(cursorToken)
	if err != nil {
		return Page[model.Post]{}, err
	}
	limit = s.limits.clamp(limit)

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	authorIDs, err := s.followStore.FollowingIDs(ctx, userID)
	if err != nil {
		return Page[model.Post]{}, wrapStorage(fmt.Errorf("resolving followed authors: %w", err))
	}
	if len(authorIDs) == 0 {
		return Page[model.Post]{}, nil
	}

	// Each chunk query is independently ordered and capped at limit, so the
	// merged head of all chunks is the page regardless of how authors are
	// distributed across chunks.
	var lists [][]model.Post
	for _, chunk := range lo.Chunk(authorIDs, s.chunkSize) {
		posts, err := s.postStore.ListByAuthors(ctx, chunk, before, limit)
		if err != nil {
			return Page[model.Post]{}, wrapStorage(fmt.Errorf("listing feed chunk: %w", err))
		}
		if len(posts) > 0 {
			lists = append(lists, posts)
		}
	}

	merged := mergeDescending(lists, limit)
	page := Page[model.Post]{Items: merged}
	if len(merged) == limit {
		last := merged[len(merged)-1]
		page.NextCursor = cursor.Encode(cursor.Key{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

// mergeDescending k-way merges lists that are each already ordered
// (created_at DESC, id DESC) and returns the first limit entries of the
// combined order.
func mergeDescending(lists [][]model.Post, limit int) []model.Post {
	h := make(postHeap, 0, len(lists))
	for _, posts := range lists {
		h = append(h, mergeSource{posts: posts})
	}
	heap.Init(&h)

	out := make([]model.Post, 0, limit)
	for h.Len() > 0 && len(out) < limit {
		src := h[0]
		out = append(out, src.posts[src.next])
		src.next++
		if src.next < len(src.posts) {
			h[0] = src
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}
	}
	return out
}

type mergeSource struct {
	posts []model.Post
	next  int
}

func (s mergeSource) head() model.Post { return s.posts[s.next] }

type postHeap []mergeSource

func (h postHeap) Len() int { return len(h) }

func (h postHeap) Less(i, j int) bool {
	a, b := h[i].head(), h[j].head()
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (h postHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *postHeap) Push(x any) { *h = append(*h, x.(mergeSource)) }

func (h *postHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
