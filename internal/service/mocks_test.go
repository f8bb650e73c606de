package service_test

import (
	"context"
	"sync"
	"time"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/queue"
	"surfceylon.app/server/internal/store"
)

type mockUserStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	createFn        func(ctx context.Context, user *model.User) error
	updateFn        func(ctx context.Context, user *model.User) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

type mockFollowStore struct {
	createFn       func(ctx context.Context, followerID, followeeID int64) (bool, error)
	deleteFn       func(ctx context.Context, followerID, followeeID int64) error
	existsFn       func(ctx context.Context, followerID, followeeID int64) (bool, error)
	followingIDsFn func(ctx context.Context, followerID int64) ([]int64, error)
	followersFn    func(ctx context.Context, of int64, before *cursor.Key, limit int) ([]model.FollowEdge, error)
	followingFn    func(ctx context.Context, of int64, before *cursor.Key, limit int) ([]model.FollowEdge, error)
}

func (m *mockFollowStore) Create(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followeeID)
	}
	return true, nil
}

func (m *mockFollowStore) Delete(ctx context.Context, followerID, followeeID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followeeID)
	}
	return nil
}

func (m *mockFollowStore) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followeeID)
	}
	return false, nil
}

func (m *mockFollowStore) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	if m.followingIDsFn != nil {
		return m.followingIDsFn(ctx, followerID)
	}
	return nil, nil
}

func (m *mockFollowStore) Followers(ctx context.Context, of int64, before *cursor.Key, limit int) ([]model.FollowEdge, error) {
	if m.followersFn != nil {
		return m.followersFn(ctx, of, before, limit)
	}
	return nil, nil
}

func (m *mockFollowStore) Following(ctx context.Context, of int64, before *cursor.Key, limit int) ([]model.FollowEdge, error) {
	if m.followingFn != nil {
		return m.followingFn(ctx, of, before, limit)
	}
	return nil, nil
}

type mockPostStore struct {
	createFn        func(ctx context.Context, post *model.Post) error
	listByAuthorsFn func(ctx context.Context, authorIDs []int64, before *cursor.Key, limit int) ([]model.Post, error)
}

func (m *mockPostStore) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostStore) ListByAuthors(ctx context.Context, authorIDs []int64, before *cursor.Key, limit int) ([]model.Post, error) {
	if m.listByAuthorsFn != nil {
		return m.listByAuthorsFn(ctx, authorIDs, before, limit)
	}
	return nil, nil
}

type mockConversationStore struct {
	getByIDFn           func(ctx context.Context, id int64) (*model.Conversation, error)
	upsertDirectFn      func(ctx context.Context, conv *model.Conversation) error
	createGroupFn       func(ctx context.Context, conv *model.Conversation) error
	isMemberFn          func(ctx context.Context, conversationID, memberID int64) (bool, error)
	memberIDsFn         func(ctx context.Context, conversationID int64) ([]int64, error)
	getMembershipFn     func(ctx context.Context, conversationID, memberID int64) (*model.Membership, error)
	advanceReadCursorFn func(ctx context.Context, conversationID, memberID, seq int64) (int64, error)
}

func (m *mockConversationStore) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Conversation{ID: id}, nil
}

func (m *mockConversationStore) UpsertDirect(ctx context.Context, conv *model.Conversation) error {
	if m.upsertDirectFn != nil {
		return m.upsertDirectFn(ctx, conv)
	}
	return nil
}

func (m *mockConversationStore) CreateGroup(ctx context.Context, conv *model.Conversation) error {
	if m.createGroupFn != nil {
		return m.createGroupFn(ctx, conv)
	}
	return nil
}

func (m *mockConversationStore) IsMember(ctx context.Context, conversationID, memberID int64) (bool, error) {
	if m.isMemberFn != nil {
		return m.isMemberFn(ctx, conversationID, memberID)
	}
	return true, nil
}

func (m *mockConversationStore) MemberIDs(ctx context.Context, conversationID int64) ([]int64, error) {
	if m.memberIDsFn != nil {
		return m.memberIDsFn(ctx, conversationID)
	}
	return nil, nil
}

func (m *mockConversationStore) GetMembership(ctx context.Context, conversationID, memberID int64) (*model.Membership, error) {
	if m.getMembershipFn != nil {
		return m.getMembershipFn(ctx, conversationID, memberID)
	}
	return &model.Membership{ConversationID: conversationID, MemberID: memberID}, nil
}

func (m *mockConversationStore) AdvanceReadCursor(ctx context.Context, conversationID, memberID, seq int64) (int64, error) {
	if m.advanceReadCursorFn != nil {
		return m.advanceReadCursorFn(ctx, conversationID, memberID, seq)
	}
	return seq, nil
}

type mockMessageStore struct {
	appendFn     func(ctx context.Context, msg *model.Message) error
	maxSeqFn     func(ctx context.Context, conversationID int64) (int64, error)
	listBeforeFn func(ctx context.Context, conversationID, beforeSeq int64, limit int) ([]model.Message, error)
}

func (m *mockMessageStore) Append(ctx context.Context, msg *model.Message) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, msg)
	}
	msg.Seq = 1
	return nil
}

func (m *mockMessageStore) MaxSeq(ctx context.Context, conversationID int64) (int64, error) {
	if m.maxSeqFn != nil {
		return m.maxSeqFn(ctx, conversationID)
	}
	return 0, nil
}

func (m *mockMessageStore) ListBefore(ctx context.Context, conversationID, beforeSeq int64, limit int) ([]model.Message, error) {
	if m.listBeforeFn != nil {
		return m.listBeforeFn(ctx, conversationID, beforeSeq, limit)
	}
	return nil, nil
}

type mockNotificationStore struct {
	createFn      func(ctx context.Context, n *model.Notification) error
	listByUserFn  func(ctx context.Context, userID int64, before *cursor.Key, limit int) ([]model.Notification, error)
	markAllReadFn func(ctx context.Context, userID int64) error
}

func (m *mockNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return nil
}

func (m *mockNotificationStore) ListByUser(ctx context.Context, userID int64, before *cursor.Key, limit int) ([]model.Notification, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, before, limit)
	}
	return nil, nil
}

func (m *mockNotificationStore) MarkAllRead(ctx context.Context, userID int64) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return nil
}

// mockProducer records enqueued events for assertions. Safe for concurrent use.
type mockProducer struct {
	mu     sync.Mutex
	events []queue.Event
	fail   error
}

func (p *mockProducer) Enqueue(_ context.Context, ev queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *mockProducer) Close() error { return nil }

func (p *mockProducer) recorded() []queue.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]queue.Event, len(p.events))
	copy(out, p.events)
	return out
}

// memMessageStore is a stateful in-memory MessageStore honoring the atomic
// seq-assignment contract, for concurrency specs.
type memMessageStore struct {
	mu       sync.Mutex
	messages map[int64][]model.Message
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{messages: make(map[int64][]model.Message)}
}

func (s *memMessageStore) Append(_ context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[msg.ConversationID]
	msg.Seq = int64(len(msgs)) + 1
	msg.CreatedAt = time.Now()
	s.messages[msg.ConversationID] = append(msgs, *msg)
	return nil
}

func (s *memMessageStore) MaxSeq(_ context.Context, conversationID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.messages[conversationID])), nil
}

func (s *memMessageStore) ListBefore(_ context.Context, conversationID, beforeSeq int64, limit int) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[conversationID]
	if beforeSeq <= 0 {
		beforeSeq = int64(len(msgs)) + 1
	}
	var out []model.Message
	for seq := beforeSeq - 1; seq >= 1 && len(out) < limit; seq-- {
		out = append(out, msgs[seq-1])
	}
	return out, nil
}

// memConversationStore is a stateful in-memory ConversationStore honoring the
// race-safe direct-key upsert contract.
type memConversationStore struct {
	mu          sync.Mutex
	byKey       map[string]model.Conversation
	byID        map[int64]model.Conversation
	memberships map[int64]map[int64]*model.Membership
}

func newMemConversationStore() *memConversationStore {
	return &memConversationStore{
		byKey:       make(map[string]model.Conversation),
		byID:        make(map[int64]model.Conversation),
		memberships: make(map[int64]map[int64]*model.Membership),
	}
}

func (s *memConversationStore) GetByID(_ context.Context, id int64) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := conv
	return &out, nil
}

func (s *memConversationStore) UpsertDirect(_ context.Context, conv *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byKey[*conv.DirectKey]; ok {
		conv.ID = existing.ID
		conv.CreatedAt = existing.CreatedAt
		return nil
	}
	conv.CreatedAt = time.Now()
	s.byKey[*conv.DirectKey] = *conv
	s.byID[conv.ID] = *conv
	s.addMembersLocked(conv)
	return nil
}

func (s *memConversationStore) CreateGroup(_ context.Context, conv *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv.CreatedAt = time.Now()
	s.byID[conv.ID] = *conv
	s.addMembersLocked(conv)
	return nil
}

func (s *memConversationStore) addMembersLocked(conv *model.Conversation) {
	members := make(map[int64]*model.Membership, len(conv.MemberIDs))
	for _, memberID := range conv.MemberIDs {
		members[memberID] = &model.Membership{ConversationID: conv.ID, MemberID: memberID}
	}
	s.memberships[conv.ID] = members
}

func (s *memConversationStore) IsMember(_ context.Context, conversationID, memberID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.memberships[conversationID][memberID]
	return ok, nil
}

func (s *memConversationStore) MemberIDs(_ context.Context, conversationID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	for memberID := range s.memberships[conversationID] {
		out = append(out, memberID)
	}
	return out, nil
}

func (s *memConversationStore) GetMembership(_ context.Context, conversationID, memberID int64) (*model.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	membership, ok := s.memberships[conversationID][memberID]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *membership
	return &out, nil
}

func (s *memConversationStore) AdvanceReadCursor(_ context.Context, conversationID, memberID, seq int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	membership, ok := s.memberships[conversationID][memberID]
	if !ok {
		return 0, store.ErrNotFound
	}
	if seq > membership.LastReadSeq {
		membership.LastReadSeq = seq
	}
	return membership.LastReadSeq, nil
}
