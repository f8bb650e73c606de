package service_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/service"
	"surfceylon.app/server/internal/store"
)

var _ = Describe("ConversationService", func() {
	var (
		convs    *mockConversationStore
		messages *mockMessageStore
		users    *mockUserStore
		ctx      context.Context
	)

	newService := func() service.ConversationService {
		return service.NewConversationService(convs, messages, users, time.Second, 8)
	}

	BeforeEach(func() {
		ctx = context.Background()
		convs = &mockConversationStore{}
		messages = &mockMessageStore{}
		users = &mockUserStore{}
	})

	Describe("Open", func() {
		It("rejects a conversation with only the caller", func() {
			_, err := newService().Open(ctx, 1, []int64{1, 1})
			Expect(err).To(MatchError(service.ErrSelfConversation))
		})

		It("rejects an empty member list", func() {
			_, err := newService().Open(ctx, 1, nil)
			Expect(err).To(MatchError(service.ErrTooFewMembers))
		})

		It("rejects member sets above the cap", func() {
			members := make([]int64, 10)
			for i := range members {
				members[i] = int64(i + 2)
			}

			_, err := newService().Open(ctx, 1, members)
			Expect(err).To(MatchError(service.ErrTooManyMembers))
		})

		It("returns not found when a member does not exist", func() {
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				if id == 99 {
					return nil, store.ErrNotFound
				}
				return &model.User{ID: id}, nil
			}

			_, err := newService().Open(ctx, 1, []int64{99})
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})

		It("resolves two members to a direct conversation", func() {
			var captured *model.Conversation
			convs.upsertDirectFn = func(_ context.Context, conv *model.Conversation) error {
				captured = conv
				return nil
			}

			conv, err := newService().Open(ctx, 1, []int64{2})
			Expect(err).NotTo(HaveOccurred())
			Expect(conv.IsDirect()).To(BeTrue())
			Expect(*conv.DirectKey).To(Equal("1:2"))
			Expect(captured).To(Equal(conv))
		})

		It("uses the same direct key for either caller", func() {
			Expect(model.DirectKey(1, 2)).To(Equal(model.DirectKey(2, 1)))
		})

		It("always creates a fresh group for three or more members", func() {
			created := 0
			convs.createGroupFn = func(_ context.Context, _ *model.Conversation) error {
				created++
				return nil
			}

			first, err := newService().Open(ctx, 1, []int64{2, 3})
			Expect(err).NotTo(HaveOccurred())
			second, err := newService().Open(ctx, 1, []int64{2, 3})
			Expect(err).NotTo(HaveOccurred())

			Expect(created).To(Equal(2))
			Expect(first.ID).NotTo(Equal(second.ID))
			Expect(first.IsDirect()).To(BeFalse())
		})

		It("resolves concurrent first-contact requests to one conversation", func() {
			memStore := newMemConversationStore()
			svc := service.NewConversationService(memStore, messages, users, time.Second, 8)

			const attempts = 16
			ids := make([]int64, attempts)
			var wg sync.WaitGroup
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					caller, other := int64(1), int64(2)
					if i%2 == 0 {
						caller, other = other, caller
					}
					conv, err := svc.Open(ctx, caller, []int64{other})
					Expect(err).NotTo(HaveOccurred())
					ids[i] = conv.ID
				}(i)
			}
			wg.Wait()

			for _, id := range ids {
				Expect(id).To(Equal(ids[0]))
			}
		})
	})

	Describe("Get", func() {
		It("distinguishes a missing conversation from a foreign one", func() {
			convs.getByIDFn = func(_ context.Context, _ int64) (*model.Conversation, error) {
				return nil, store.ErrNotFound
			}
			_, err := newService().Get(ctx, 1, 42)
			Expect(err).To(MatchError(service.ErrConversationNotFound))

			convs.getByIDFn = nil
			convs.isMemberFn = func(_ context.Context, _, _ int64) (bool, error) {
				return false, nil
			}
			_, err = newService().Get(ctx, 1, 42)
			Expect(err).To(MatchError(service.ErrNotAMember))
		})
	})

	Describe("MarkRead", func() {
		It("rejects a seq past the newest message", func() {
			messages.maxSeqFn = func(_ context.Context, _ int64) (int64, error) {
				return 5, nil
			}

			_, err := newService().MarkRead(ctx, 1, 42, 6)
			Expect(err).To(MatchError(service.ErrSeqBeyondMax))
		})

		It("never moves the cursor backward", func() {
			memStore := newMemConversationStore()
			svc := service.NewConversationService(memStore, messages, users, time.Second, 8)

			conv, err := svc.Open(ctx, 1, []int64{2})
			Expect(err).NotTo(HaveOccurred())

			messages.maxSeqFn = func(_ context.Context, _ int64) (int64, error) {
				return 10, nil
			}

			cursor, err := svc.MarkRead(ctx, 1, conv.ID, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(cursor).To(Equal(int64(7)))

			cursor, err = svc.MarkRead(ctx, 1, conv.ID, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(cursor).To(Equal(int64(7)))

			membership, err := memStore.GetMembership(ctx, conv.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(membership.LastReadSeq).To(Equal(int64(7)))
		})
	})
})
