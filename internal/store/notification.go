package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/core/db"
	"surfceylon.app/server/internal/model"
)

type notificationStore struct {
	q db.Querier
}

// newNotificationStore binds a notification store to q, which may be a pool
// or an open transaction (the worker writes fan-out batches transactionally).
func newNotificationStore(q db.Querier) NotificationStore {
	return &notificationStore{q: q}
}

func (s *notificationStore) Create(ctx context.Context, n *model.Notification) error {
	return s.q.QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, kind, actor_id, subject_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		n.ID, n.UserID, n.Kind, n.ActorID, n.SubjectID,
	).Scan(&n.CreatedAt)
}

func (s *notificationStore) ListByUser(ctx context.Context, userID int64, before *cursor.Key, limit int) ([]model.Notification, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if before != nil {
		rows, err = s.q.Query(ctx, `
			SELECT id, user_id, kind, actor_id, subject_id, read, created_at
			FROM notifications
			WHERE user_id = $1 AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4`,
			userID, before.CreatedAt, before.ID, limit)
	} else {
		rows, err = s.q.Query(ctx, `
			SELECT id, user_id, kind, actor_id, subject_id, read, created_at
			FROM notifications
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`,
			userID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.ActorID, &n.SubjectID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (s *notificationStore) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := s.q.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`,
		userID,
	)
	return err
}
