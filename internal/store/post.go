package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/core/db"
	"surfceylon.app/server/internal/model"
)

type postStore struct {
	q db.Querier
}

func (s *postStore) Create(ctx context.Context, post *model.Post) error {
	err := s.q.QueryRow(ctx, `
		INSERT INTO posts (id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		post.ID, post.AuthorID, post.Body,
	).Scan(&post.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (s *postStore) ListByAuthors(ctx context.Context, authorIDs []int64, before *cursor.Key, limit int) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var (
		rows pgx.Rows
		err  error
	)
	if before != nil {
		rows, err = s.q.Query(ctx, `
			SELECT id, author_id, body, created_at FROM posts
			WHERE author_id = ANY($1) AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4`,
			authorIDs, before.CreatedAt, before.ID, limit)
	} else {
		rows, err = s.q.Query(ctx, `
			SELECT id, author_id, body, created_at FROM posts
			WHERE author_id = ANY($1)
			ORDER BY created_at DESC, id DESC
			LIMIT $2`,
			authorIDs, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Body, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
