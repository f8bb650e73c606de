package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"surfceylon.app/server/core/db"
	"surfceylon.app/server/internal/model"
)

type userStore struct {
	q db.Querier
}

const userColumns = `id, username, display_name, bio, avatar_url, created_at, updated_at`

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO users (id, username, display_name, bio, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		user.ID, user.Username, user.DisplayName, user.Bio, user.AvatarURL,
	)
	stored, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *stored
	return nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		UPDATE users
		SET display_name = $2, bio = $3, avatar_url = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		user.ID, user.DisplayName, user.Bio, user.AvatarURL,
	)
	stored, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *stored
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Bio, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
