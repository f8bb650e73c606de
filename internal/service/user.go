package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"surfceylon.app/server/common/id"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/store"
)

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// stored value unchanged.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

type UserService interface {
	Get(ctx context.Context, userID int64) (*model.User, error)
	Register(ctx context.Context, username, displayName string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*model.User, error)
}

type userService struct {
	userStore store.UserStore
	timeout   time.Duration
}

func NewUserService(userStore store.UserStore, timeout time.Duration) UserService {
	return &userService{userStore: userStore, timeout: timeout}
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.User, error) {
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, wrapStorage(fmt.Errorf("getting user: %w", err))
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, username, displayName string) (*model.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, ErrEmptyBody
	}
	if displayName == "" {
		displayName = username
	}

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	user := &model.User{
		ID:          id.New(),
		Username:    username,
		DisplayName: displayName,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		slog.ErrorContext(ctx, "failed to create user", "error", err, "username", username)
		return nil, wrapStorage(fmt.Errorf("creating user: %w", err))
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*model.User, error) {
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, wrapStorage(fmt.Errorf("getting user: %w", err))
	}

	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		user.Bio = update.Bio
	}
	if update.AvatarURL != nil {
		user.AvatarURL = update.AvatarURL
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		slog.ErrorContext(ctx, "failed to update user", "error", err, "user_id", userID)
		return nil, wrapStorage(fmt.Errorf("updating user: %w", err))
	}
	return user, nil
}
