package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/queue"
	"surfceylon.app/server/internal/service"
	"surfceylon.app/server/internal/store"
)

var _ = Describe("FollowService", func() {
	var (
		svc      service.FollowService
		follows  *mockFollowStore
		users    *mockUserStore
		producer *mockProducer
		ctx      context.Context
	)

	newService := func() service.FollowService {
		return service.NewFollowService(follows, users, producer, time.Second, 20, 100)
	}

	BeforeEach(func() {
		ctx = context.Background()
		follows = &mockFollowStore{}
		users = &mockUserStore{}
		producer = &mockProducer{}
		svc = newService()
	})

	Describe("Follow", func() {
		It("rejects following yourself", func() {
			err := svc.Follow(ctx, 7, 7)
			Expect(err).To(MatchError(service.ErrSelfFollow))
		})

		It("returns not found for a missing followee", func() {
			users.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			err := svc.Follow(ctx, 1, 2)
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})

		It("publishes an event when the edge is created", func() {
			follows.createFn = func(_ context.Context, _, _ int64) (bool, error) {
				return true, nil
			}

			Expect(svc.Follow(ctx, 1, 2)).To(Succeed())

			events := producer.recorded()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Kind).To(Equal(queue.EventFollowCreated))
			Expect(events[0].ActorID).To(Equal(int64(1)))
			Expect(events[0].SubjectID).To(Equal(int64(2)))
		})

		It("succeeds without an event when the edge already exists", func() {
			follows.createFn = func(_ context.Context, _, _ int64) (bool, error) {
				return false, nil
			}

			Expect(svc.Follow(ctx, 1, 2)).To(Succeed())
			Expect(producer.recorded()).To(BeEmpty())
		})

		It("still succeeds when the event cannot be enqueued", func() {
			producer.fail = errors.New("redis down")

			Expect(svc.Follow(ctx, 1, 2)).To(Succeed())
		})
	})

	Describe("Unfollow", func() {
		It("is a no-op for a missing edge", func() {
			follows.deleteFn = func(_ context.Context, _, _ int64) error {
				return nil
			}

			Expect(svc.Unfollow(ctx, 1, 2)).To(Succeed())
		})

		It("returns not found for a missing followee", func() {
			users.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			err := svc.Unfollow(ctx, 1, 2)
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})
	})

	Describe("IsMutual", func() {
		It("requires edges in both directions", func() {
			follows.existsFn = func(_ context.Context, followerID, followeeID int64) (bool, error) {
				return followerID == 1 && followeeID == 2, nil
			}

			mutual, err := svc.IsMutual(ctx, 1, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(mutual).To(BeFalse())

			follows.existsFn = func(_ context.Context, _, _ int64) (bool, error) {
				return true, nil
			}
			mutual, err = svc.IsMutual(ctx, 1, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(mutual).To(BeTrue())
		})
	})

	Describe("Followers", func() {
		It("rejects a malformed cursor", func() {
			_, err := svc.Followers(ctx, 1, "not-a-cursor", 10)
			Expect(err).To(MatchError(service.ErrInvalidCursor))
		})

		It("emits a next cursor only when the page is full", func() {
			now := time.Now()
			edges := []model.FollowEdge{
				{FollowerID: 10, FolloweeID: 1, CreatedAt: now},
				{FollowerID: 9, FolloweeID: 1, CreatedAt: now.Add(-time.Minute)},
			}
			follows.followersFn = func(_ context.Context, _ int64, _ *cursor.Key, limit int) ([]model.FollowEdge, error) {
				if limit < len(edges) {
					return edges[:limit], nil
				}
				return edges, nil
			}

			page, err := svc.Followers(ctx, 1, "", 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.NextCursor).NotTo(BeEmpty())

			key, err := cursor.Decode(page.NextCursor)
			Expect(err).NotTo(HaveOccurred())
			Expect(key.ID).To(Equal(int64(9)))

			page, err = svc.Followers(ctx, 1, "", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.NextCursor).To(BeEmpty())
		})

		It("clamps the limit to the configured maximum", func() {
			var gotLimit int
			follows.followersFn = func(_ context.Context, _ int64, _ *cursor.Key, limit int) ([]model.FollowEdge, error) {
				gotLimit = limit
				return nil, nil
			}

			_, err := svc.Followers(ctx, 1, "", 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotLimit).To(Equal(100))
		})
	})

	Describe("storage timeouts", func() {
		It("maps deadline errors to storage unavailable", func() {
			follows.createFn = func(_ context.Context, _, _ int64) (bool, error) {
				return false, context.DeadlineExceeded
			}

			err := svc.Follow(ctx, 1, 2)
			Expect(err).To(MatchError(service.ErrStorageUnavailable))
		})
	})
})
