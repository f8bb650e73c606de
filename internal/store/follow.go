package store

import (
	"context"

	"surfceylon.app/server/common/cursor"
	"surfceylon.app/server/core/db"
	"surfceylon.app/server/internal/model"
)

type followStore struct {
	q db.Querier
}

func (s *followStore) Create(ctx context.Context, followerID, followeeID int64) (bool, error) {
	// ON CONFLICT makes concurrent follows of the same pair converge on one edge.
	tag, err := s.q.Exec(ctx, `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *followStore) Delete(ctx context.Context, followerID, followeeID int64) error {
	_, err := s.q.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	return err
}

func (s *followStore) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID,
	).Scan(&exists)
	return exists, err
}

func (s *followStore) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	rows, err := s.q.Query(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = $1`,
		followerID,
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

func (s *followStore) Followers(ctx context.Context, of int64, before *cursor.Key, limit int) ([]model.FollowEdge, error) {
	if before != nil {
		return s.listEdges(ctx, `
			SELECT follower_id, followee_id, created_at FROM follows
			WHERE followee_id = $1 AND (created_at, follower_id) < ($2, $3)
			ORDER BY created_at DESC, follower_id DESC
			LIMIT $4`,
			of, before.CreatedAt, before.ID, limit)
	}
	return s.listEdges(ctx, `
		SELECT follower_id, followee_id, created_at FROM follows
		WHERE followee_id = $1
		ORDER BY created_at DESC, follower_id DESC
		LIMIT $2`,
		of, limit)
}

func (s *followStore) Following(ctx context.Context, of int64, before *cursor.Key, limit int) ([]model.FollowEdge, error) {
	if before != nil {
		return s.listEdges(ctx, `
			SELECT follower_id, followee_id, created_at FROM follows
			WHERE follower_id = $1 AND (created_at, followee_id) < ($2, $3)
			ORDER BY created_at DESC, followee_id DESC
			LIMIT $4`,
			of, before.CreatedAt, before.ID, limit)
	}
	return s.listEdges(ctx, `
		SELECT follower_id, followee_id, created_at FROM follows
		WHERE follower_id = $1
		ORDER BY created_at DESC, followee_id DESC
		LIMIT $2`,
		of, limit)
}

func (s *followStore) listEdges(ctx context.Context, sql string, args ...any) ([]model.FollowEdge, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []model.FollowEdge
	for rows.Next() {
		var e model.FollowEdge
		if err := rows.Scan(&e.FollowerID, &e.FolloweeID, &e.CreatedAt); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
