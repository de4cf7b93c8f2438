package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/jmoiron/sqlx"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/filter"
	"library-backend/internal/platform/paging"
)

var dialect = goqu.Dialect("mysql")

var userColumns = []any{
	"id", "username", "first_name", "last_name", "email", "phone",
	"moderation_state", "user_state", "role_type", "password_hash",
	"created_at", "updated_at",
}

var UserSort = paging.SortSpec{
	Fields: map[string]string{
		"username":        "username",
		"firstName":       "first_name",
		"lastName":        "last_name",
		"moderationState": "moderation_state",
		"userState":       "user_state",
		"roleType":        "role_type",
		"createdAt":       "created_at",
		"updatedAt":       "updated_at",
	},
	Default:    []string{"created_at"},
	TieBreaker: "id",
}

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, u *User) error {
	const q = `
INSERT INTO users (id, username, first_name, last_name, email, phone,
  moderation_state, user_state, role_type, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		u.ID, u.Username, u.FirstName, u.LastName, u.Email, u.Phone,
		u.ModerationState, u.UserState, u.RoleType, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if apperr.IsDuplicateKey(err) {
		return apperr.ErrConflict("username already exists")
	}
	return err
}

func (s *Store) getBy(ctx context.Context, col, v string) (*User, error) {
	q, args, err := dialect.From("users").Select(userColumns...).
		Where(goqu.C(col).Eq(v)).Limit(1).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	var u User
	if err := s.db.GetContext(ctx, &u, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound("user not found")
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	return s.getBy(ctx, "id", id)
}

// Predicate turns f into one conjunction; absent fields add nothing.
func Predicate(f UserFilter) filter.Builder {
	return filter.New().
		Equal("id", f.ID).
		ContainsFold("username", f.Username).
		Equal("moderation_state", filter.Text(f.ModerationState)).
		Equal("user_state", filter.Text(f.UserState)).
		Equal("role_type", filter.Text(f.RoleType)).
		Range("created_at", f.CreatedFrom, f.CreatedTo)
}

func (s *Store) List(ctx context.Context, f UserFilter, w paging.Window) ([]User, int64, error) {
	base := Predicate(f).Apply(dialect.From("users"))

	countSQL, countArgs, err := base.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []User{}, 0, nil
	}

	listSQL, listArgs, err := w.Apply(base.Select(userColumns...)).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	out := make([]User, 0, w.Size)
	if err := s.db.SelectContext(ctx, &out, listSQL, listArgs...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
