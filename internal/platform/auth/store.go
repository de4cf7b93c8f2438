package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type Account struct {
	ID              string `db:"id"`
	Username        string `db:"username"`
	PasswordHash    string `db:"password_hash"`
	Role            string `db:"role_type"`
	UserState       string `db:"user_state"`
	ModerationState string `db:"moderation_state"`
}

// ログイン可能か（ACTIVE かつ BLOCKED でない）
func (a *Account) CanLogin() bool {
	return a.UserState == "ACTIVE" && a.ModerationState != "BLOCKED"
}

type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) AccountStore {
	return &Store{db: db}
}

// 見つからなければ (nil, nil)
func (s *Store) GetByUsername(ctx context.Context, username string) (*Account, error) {
	const q = `
SELECT id, username, password_hash, role_type, user_state, moderation_state
FROM users
WHERE username = ?
LIMIT 1
`
	var a Account
	err := s.db.GetContext(ctx, &a, q, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
