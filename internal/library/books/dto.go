package books

import (
	"database/sql"
	"time"

	"library-backend/internal/platform/paging"
)

type Book struct {
	ID            string        `db:"id"`
	Title         string        `db:"title"`
	Author        string        `db:"author"`
	ISBN          string        `db:"isbn"`
	GenreID       sql.NullInt64 `db:"genre_id"`
	PublishedYear sql.NullInt32 `db:"published_year"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
	DeletedAt     sql.NullTime  `db:"deleted_at"`
}

type CreateBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	GenreID       *int64 `json:"genreId,omitempty"`
	PublishedYear *int32 `json:"publishedYear,omitempty"`
}

// 検索条件（nil/空は無視）
type BookSearchQuery struct {
	GenreID *int64
	Author  *string
	Title   *string
}

type ListQuery struct {
	Search BookSearchQuery
	Page   paging.Request
}

type BookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	GenreID       *int64    `json:"genreId,omitempty"`
	PublishedYear *int32    `json:"publishedYear,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toResponse(b *Book) BookResponse {
	r := BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.GenreID.Valid {
		v := b.GenreID.Int64
		r.GenreID = &v
	}
	if b.PublishedYear.Valid {
		v := b.PublishedYear.Int32
		r.PublishedYear = &v
	}
	return r
}
