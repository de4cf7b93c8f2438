package books

import (
	"context"
	"crypto/rand"
	"strings"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/paging"
)

type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ New() (string, error) }

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Repository は Store の抽象（テスト差し替え用）
type Repository interface {
	Insert(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (*Book, error)
	List(ctx context.Context, q BookSearchQuery, w paging.Window) ([]Book, int64, error)
}

type Service struct {
	store Repository
	clock Clock
	id    IDGen
}

func NewService(store Repository) *Service {
	return &Service{store: store, clock: realClock{}, id: ulidGen{}}
}

func (s *Service) CreateBook(ctx context.Context, in CreateBookRequest) (*BookResponse, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	isbn := normalizeISBN(in.ISBN)
	switch {
	case title == "":
		return nil, apperr.ErrMissing("title")
	case author == "":
		return nil, apperr.ErrMissing("author")
	case isbn == "":
		return nil, apperr.ErrMissing("isbn")
	}
	if len(isbn) != 10 && len(isbn) != 13 {
		return nil, apperr.ErrInvalid("isbn must have 10 or 13 digits")
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	b := &Book{
		ID:        id,
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.GenreID != nil {
		b.GenreID.Int64, b.GenreID.Valid = *in.GenreID, true
	}
	if in.PublishedYear != nil {
		b.PublishedYear.Int32, b.PublishedYear.Valid = *in.PublishedYear, true
	}
	if err := s.store.Insert(ctx, b); err != nil {
		return nil, err
	}
	out := toResponse(b)
	return &out, nil
}

func (s *Service) GetBook(ctx context.Context, id string) (*BookResponse, error) {
	if id == "" {
		return nil, apperr.ErrMissing("id")
	}
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toResponse(b)
	return &out, nil
}

func (s *Service) ListBooks(ctx context.Context, q ListQuery) (paging.Page[BookResponse], error) {
	w := paging.Translate(q.Page, BookSort)
	rows, total, err := s.store.List(ctx, q.Search, w)
	if err != nil {
		return paging.Page[BookResponse]{}, err
	}
	out := make([]BookResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return paging.NewPage(w, total, out), nil
}

// ハイフン・空白を除去（末尾の X は残す）
func normalizeISBN(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsDigit(r) || r == 'X' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
