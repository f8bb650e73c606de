package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"surfceylon.app/server/core/db"
	"surfceylon.app/server/internal/model"
)

const uniqueViolation = "23505"

// seqRetries bounds the read-max-then-insert retry loop. Each retry only
// loses to another writer that committed a message, so the loop terminates
// quickly under any realistic contention.
const seqRetries = 5

type messageStore struct {
	db *db.DB
}

func (s *messageStore) Append(ctx context.Context, msg *model.Message) error {
	for attempt := 0; attempt < seqRetries; attempt++ {
		err := s.db.WithTx(ctx, func(q db.Querier) error {
			return q.QueryRow(ctx, `
				INSERT INTO messages (id, conversation_id, sender_id, body, seq)
				SELECT $1, $2, $3, $4, COALESCE(MAX(seq), 0) + 1
				FROM messages WHERE conversation_id = $2
				RETURNING seq, created_at`,
				msg.ID, msg.ConversationID, msg.SenderID, msg.Body,
			).Scan(&msg.Seq, &msg.CreatedAt)
		})
		if err == nil {
			return nil
		}

		// Concurrent writer took our seq; the UNIQUE (conversation_id, seq)
		// constraint rejected the insert. Re-read max and try again.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			continue
		}
		return err
	}
	return fmt.Errorf("appending message: seq contention after %d attempts", seqRetries)
}

func (s *messageStore) MaxSeq(ctx context.Context, conversationID int64) (int64, error) {
	var max int64
	err := s.db.Pool().QueryRow(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM messages WHERE conversation_id = $1`,
		conversationID,
	).Scan(&max)
	return max, err
}

func (s *messageStore) ListBefore(ctx context.Context, conversationID, beforeSeq int64, limit int) ([]model.Message, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if beforeSeq > 0 {
		rows, err = s.db.Pool().Query(ctx, `
			SELECT id, conversation_id, sender_id, body, seq, created_at
			FROM messages
			WHERE conversation_id = $1 AND seq < $2
			ORDER BY seq DESC
			LIMIT $3`,
			conversationID, beforeSeq, limit)
	} else {
		rows, err = s.db.Pool().Query(ctx, `
			SELECT id, conversation_id, sender_id, body, seq, created_at
			FROM messages
			WHERE conversation_id = $1
			ORDER BY seq DESC
			LIMIT $2`,
			conversationID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.Seq, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
