package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"surfceylon.app/server/core/db"
	"surfceylon.app/server/internal/model"
)

type conversationStore struct {
	db *db.DB
}

func (s *conversationStore) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.Pool().QueryRow(ctx,
		`SELECT id, direct_key, created_at FROM conversations WHERE id = $1`,
		id,
	).Scan(&conv.ID, &conv.DirectKey, &conv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	members, err := s.MemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	conv.MemberIDs = members
	return &conv, nil
}

func (s *conversationStore) UpsertDirect(ctx context.Context, conv *model.Conversation) error {
	if conv.DirectKey == nil {
		return fmt.Errorf("direct conversation requires a direct key")
	}

	return s.db.WithTx(ctx, func(q db.Querier) error {
		// Insert-or-skip on the unique direct_key, then read back whichever row
		// won. Two concurrent first-contact requests both land on the same id.
		_, err := q.Exec(ctx, `
			INSERT INTO conversations (id, direct_key)
			VALUES ($1, $2)
			ON CONFLICT (direct_key) DO NOTHING`,
			conv.ID, *conv.DirectKey,
		)
		if err != nil {
			return err
		}

		var stored model.Conversation
		var key string
		err = q.QueryRow(ctx,
			`SELECT id, direct_key, created_at FROM conversations WHERE direct_key = $1`,
			*conv.DirectKey,
		).Scan(&stored.ID, &key, &stored.CreatedAt)
		if err != nil {
			return err
		}

		for _, member := range conv.MemberIDs {
			_, err := q.Exec(ctx, `
				INSERT INTO conversation_members (conversation_id, member_id)
				VALUES ($1, $2)
				ON CONFLICT (conversation_id, member_id) DO NOTHING`,
				stored.ID, member,
			)
			if err != nil {
				return err
			}
		}

		conv.ID = stored.ID
		conv.DirectKey = &key
		conv.CreatedAt = stored.CreatedAt
		return nil
	})
}

func (s *conversationStore) CreateGroup(ctx context.Context, conv *model.Conversation) error {
	return s.db.WithTx(ctx, func(q db.Querier) error {
		err := q.QueryRow(ctx,
			`INSERT INTO conversations (id) VALUES ($1) RETURNING created_at`,
			conv.ID,
		).Scan(&conv.CreatedAt)
		if err != nil {
			return err
		}

		for _, member := range conv.MemberIDs {
			_, err := q.Exec(ctx, `
				INSERT INTO conversation_members (conversation_id, member_id)
				VALUES ($1, $2)`,
				conv.ID, member,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *conversationStore) IsMember(ctx context.Context, conversationID, memberID int64) (bool, error) {
	var exists bool
	err := s.db.Pool().QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conversation_members
			WHERE conversation_id = $1 AND member_id = $2
		)`,
		conversationID, memberID,
	).Scan(&exists)
	return exists, err
}

func (s *conversationStore) MemberIDs(ctx context.Context, conversationID int64) ([]int64, error) {
	rows, err := s.db.Pool().Query(ctx,
		`SELECT member_id FROM conversation_members WHERE conversation_id = $1 ORDER BY member_id`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *conversationStore) GetMembership(ctx context.Context, conversationID, memberID int64) (*model.Membership, error) {
	var m model.Membership
	err := s.db.Pool().QueryRow(ctx, `
		SELECT conversation_id, member_id, last_read_seq, created_at
		FROM conversation_members
		WHERE conversation_id = $1 AND member_id = $2`,
		conversationID, memberID,
	).Scan(&m.ConversationID, &m.MemberID, &m.LastReadSeq, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *conversationStore) AdvanceReadCursor(ctx context.Context, conversationID, memberID, seq int64) (int64, error) {
	// GREATEST keeps the cursor monotonic; a backward move is a silent no-op.
	var current int64
	err := s.db.Pool().QueryRow(ctx, `
		UPDATE conversation_members
		SET last_read_seq = GREATEST(last_read_seq, $3)
		WHERE conversation_id = $1 AND member_id = $2
		RETURNING last_read_seq`,
		conversationID, memberID, seq,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return current, nil
}
