package books

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

var bookColumns = []any{
	"id", "title", "author", "isbn", "genre_id", "published_year",
	"created_at", "updated_at", "deleted_at",
}

// 既定の並び: 著者 → 登録日時（向きはリクエスト次第、既定は降順）
var BookSort = paging.SortSpec{
	Fields: map[string]string{
		"title":         "title",
		"author":        "author",
		"isbn":          "isbn",
		"publishedYear": "published_year",
		"createdAt":     "created_at",
		"updatedAt":     "updated_at",
	},
	Default:    []string{"author", "created_at"},
	TieBreaker: "id",
}

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, b *Book) error {
	const q = `
INSERT INTO books (id, title, author, isbn, genre_id, published_year, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Author, b.ISBN, b.GenreID, b.PublishedYear, b.CreatedAt, b.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case apperr.IsDuplicateKey(err):
		return apperr.ErrConflict("isbn already exists")
	case apperr.IsForeignKey(err):
		return apperr.ErrInvalid("invalid genreId")
	}
	return err
}

func (s *Store) GetByID(ctx context.Context, id string) (*Book, error) {
	q, args, err := dialect.From("books").Select(bookColumns...).
		Where(goqu.C("id").Eq(id), goqu.C("deleted_at").IsNull()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	var b Book
	if err := s.db.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound("book not found")
		}
		return nil, err
	}
	return &b, nil
}

func searchPredicate(q BookSearchQuery) filter.Builder {
	return filter.New().
		IsNull("deleted_at").
		EqualInt("genre_id", q.GenreID).
		ContainsFold("author", q.Author).
		ContainsFold("title", q.Title)
}

func (s *Store) List(ctx context.Context, q BookSearchQuery, w paging.Window) ([]Book, int64, error) {
	base := searchPredicate(q).Apply(dialect.From("books"))

	countSQL, countArgs, err := base.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []Book{}, 0, nil
	}

	listSQL, listArgs, err := w.Apply(base.Select(bookColumns...)).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	out := make([]Book, 0, w.Size)
	if err := s.db.SelectContext(ctx, &out, listSQL, listArgs...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
