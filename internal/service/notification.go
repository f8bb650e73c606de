package service

import (
	"context"
	"fmt"
	"time"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/store"
)

type NotificationService interface {
	List(ctx context.Context, userID int64, cursorToken string, limit int) (Page[model.Notification], error)
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationService struct {
	notificationStore store.NotificationStore
	timeout           time.Duration
	limits            pageLimits
}

func NewNotificationService(notificationStore store.NotificationStore, timeout time.Duration, defaultLimit, maxLimit int) NotificationService {
	return &notificationService{
		notificationStore: notificationStore,
		timeout:           timeout,
		limits:            pageLimits{def: defaultLimit, max: maxLimit},
	}
}

func (s *notificationService) List(ctx context.Context, userID int64, cursorToken string, limit int) (Page[model.Notification], error) {
	before, err := decodeKeyCursor(cursorToken)
	if err != nil {
		return Page[model.Notification]{}, err
	}
	limit = s.limits.clamp(limit)

	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	notifications, err := s.notificationStore.ListByUser(ctx, userID, before, limit)
	if err != nil {
		return Page[model.Notification]{}, wrapStorage(fmt.Errorf("listing notifications: %w", err))
	}

	page := Page[model.Notification]{Items: notifications}
	if len(notifications) == limit {
		last := notifications[len(notifications)-1]
		page.NextCursor = cursor.Encode(cursor.Key{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	ctx, cancel := boundStorage(ctx, s.timeout)
	defer cancel()

	if err := s.notificationStore.MarkAllRead(ctx, userID); err != nil {
		return wrapStorage(fmt.Errorf("marking notifications read: %w", err))
	}
	return nil
}
