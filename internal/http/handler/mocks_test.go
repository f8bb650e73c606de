package handler_test

import (
	"context"

	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/service"
)

type mockFollowService struct {
	followFn      func(ctx context.Context, followerID, followeeID int64) error
	unfollowFn    func(ctx context.Context, followerID, followeeID int64) error
	isFollowingFn func(ctx context.Context, a, b int64) (bool, error)
	isMutualFn    func(ctx context.Context, a, b int64) (bool, error)
	followersFn   func(ctx context.Context, of int64, cursorToken string, limit int) (service.Page[model.FollowEdge], error)
	followingFn   func(ctx context.Context, of int64, cursorToken string, limit int) (service.Page[model.FollowEdge], error)
}

func (m *mockFollowService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if m.followFn != nil {
		return m.followFn(ctx, followerID, followeeID)
	}
	return nil
}

func (m *mockFollowService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, followerID, followeeID)
	}
	return nil
}

func (m *mockFollowService) IsFollowing(ctx context.Context, a, b int64) (bool, error) {
	if m.isFollowingFn != nil {
		return m.isFollowingFn(ctx, a, b)
	}
	return false, nil
}

func (m *mockFollowService) IsMutual(ctx context.Context, a, b int64) (bool, error) {
	if m.isMutualFn != nil {
		return m.isMutualFn(ctx, a, b)
	}
	return false, nil
}

func (m *mockFollowService) Followers(ctx context.Context, of int64, cursorToken string, limit int) (service.Page[model.FollowEdge], error) {
	if m.followersFn != nil {
		return m.followersFn(ctx, of, cursorToken, limit)
	}
	return service.Page[model.FollowEdge]{}, nil
}

func (m *mockFollowService) Following(ctx context.Context, of int64, cursorToken string, limit int) (service.Page[model.FollowEdge], error) {
	if m.followingFn != nil {
		return m.followingFn(ctx, of, cursorToken, limit)
	}
	return service.Page[model.FollowEdge]{}, nil
}

type mockMessageService struct {
	sendFn        func(ctx context.Context, callerID, conversationID int64, body string) (*model.Message, error)
	listFn        func(ctx context.Context, callerID, conversationID int64, cursorToken string, limit int) (service.Page[model.Message], error)
	unreadCountFn func(ctx context.Context, callerID, conversationID int64) (int64, error)
}

func (m *mockMessageService) Send(ctx context.Context, callerID, conversationID int64, body string) (*model.Message, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, callerID, conversationID, body)
	}
	return &model.Message{}, nil
}

func (m *mockMessageService) List(ctx context.Context, callerID, conversationID int64, cursorToken string, limit int) (service.Page[model.Message], error) {
	if m.listFn != nil {
		return m.listFn(ctx, callerID, conversationID, cursorToken, limit)
	}
	return service.Page[model.Message]{}, nil
}

func (m *mockMessageService) UnreadCount(ctx context.Context, callerID, conversationID int64) (int64, error) {
	if m.unreadCountFn != nil {
		return m.unreadCountFn(ctx, callerID, conversationID)
	}
	return 0, nil
}

type mockConversationService struct {
	openFn     func(ctx context.Context, callerID int64, memberIDs []int64) (*model.Conversation, error)
	getFn      func(ctx context.Context, callerID, conversationID int64) (*model.Conversation, error)
	markReadFn func(ctx context.Context, callerID, conversationID, seq int64) (int64, error)
}

func (m *mockConversationService) Open(ctx context.Context, callerID int64, memberIDs []int64) (*model.Conversation, error) {
	if m.openFn != nil {
		return m.openFn(ctx, callerID, memberIDs)
	}
	return &model.Conversation{}, nil
}

func (m *mockConversationService) Get(ctx context.Context, callerID, conversationID int64) (*model.Conversation, error) {
	if m.getFn != nil {
		return m.getFn(ctx, callerID, conversationID)
	}
	return &model.Conversation{}, nil
}

func (m *mockConversationService) MarkRead(ctx context.Context, callerID, conversationID, seq int64) (int64, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, callerID, conversationID, seq)
	}
	return seq, nil
}

type mockUserService struct {
	getFn           func(ctx context.Context, userID int64) (*model.User, error)
	registerFn      func(ctx context.Context, username, displayName string) (*model.User, error)
	updateProfileFn func(ctx context.Context, userID int64, update service.ProfileUpdate) (*model.User, error)
}

func (m *mockUserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return &model.User{ID: userID}, nil
}

func (m *mockUserService) Register(ctx context.Context, username, displayName string) (*model.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, displayName)
	}
	return &model.User{Username: username, DisplayName: displayName}, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID int64, update service.ProfileUpdate) (*model.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, update)
	}
	return &model.User{ID: userID}, nil
}
