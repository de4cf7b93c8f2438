package genres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"library-backend/internal/platform/apperr"
)

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// GET /genres?all=1
func (s *Store) ListGenres(ctx context.Context, includeDisabled bool) ([]Genre, error) {
	q := `SELECT genre_id, genre_name, genre_code, is_disabled FROM genres`
	if !includeDisabled {
		q += ` WHERE is_disabled = 0`
	}
	q += ` ORDER BY genre_id`

	res := make([]Genre, 0, 16)
	if err := s.db.SelectContext(ctx, &res, q); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) GetGenreByID(ctx context.Context, id uint64) (*Genre, error) {
	const q = `
		SELECT genre_id, genre_name, genre_code, is_disabled
		FROM genres
		WHERE genre_id = ?`
	var g Genre
	if err := s.db.GetContext(ctx, &g, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound("genre not found")
		}
		return nil, err
	}
	return &g, nil
}

func (s *Store) CreateGenre(ctx context.Context, name, code string) (*Genre, error) {
	const q = `INSERT INTO genres (genre_name, genre_code, is_disabled) VALUES (?, ?, 0)`
	r, err := s.db.ExecContext(ctx, q, name, code)
	if err != nil {
		if apperr.IsDuplicateKey(err) {
			return nil, apperr.ErrConflict("genre code already exists")
		}
		return nil, err
	}
	lastID, err := r.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Genre{GenreID: uint64(lastID), GenreName: name, GenreCode: code}, nil
}

func (s *Store) UpdateGenre(ctx context.Context, id uint64, name, code string, disabled bool) error {
	const q = `
		UPDATE genres
		SET genre_name = ?, genre_code = ?, is_disabled = ?
		WHERE genre_id = ?`
	r, err := s.db.ExecContext(ctx, q, name, code, disabled, id)
	if err != nil {
		if apperr.IsDuplicateKey(err) {
			return apperr.ErrConflict("genre code already exists")
		}
		return err
	}
	return affectedOne(r, "genre not found")
}

// DELETE: is_disabled=1 にする（books から参照されるので物理削除しない）
func (s *Store) DisableGenre(ctx context.Context, id uint64) error {
	const q = `UPDATE genres SET is_disabled = 1 WHERE genre_id = ?`
	r, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return affectedOne(r, "genre not found")
}

func affectedOne(r sql.Result, notFound string) error {
	aff, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return apperr.ErrNotFound(notFound)
	}
	return nil
}
