package genres

import (
	"context"
	"strings"

	"library-backend/internal/platform/apperr"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service { return &Service{store: store} }

func parseBoolish(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "1" || s == "true" || s == "yes" || s == "all"
}

// コードは大文字に揃える
func normalizeGenreCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", apperr.ErrMissing("code")
	}
	return code, nil
}

func normalizeGenreName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.ErrMissing("name")
	}
	return name, nil
}

func (s *Service) ListGenres(ctx context.Context, all string) ([]Genre, error) {
	return s.store.ListGenres(ctx, parseBoolish(all))
}

func (s *Service) GetGenre(ctx context.Context, id uint64) (*Genre, error) {
	return s.store.GetGenreByID(ctx, id)
}

func (s *Service) CreateGenre(ctx context.Context, in CreateGenreRequest) (*Genre, error) {
	n, err := normalizeGenreName(in.GenreName)
	if err != nil {
		return nil, err
	}
	c, err := normalizeGenreCode(in.GenreCode)
	if err != nil {
		return nil, err
	}
	return s.store.CreateGenre(ctx, n, c)
}

func (s *Service) UpdateGenre(ctx context.Context, id uint64, in UpdateGenreRequest) (*Genre, error) {
	n, err := normalizeGenreName(in.GenreName)
	if err != nil {
		return nil, err
	}
	c, err := normalizeGenreCode(in.GenreCode)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateGenre(ctx, id, n, c, in.IsDisabled); err != nil {
		return nil, err
	}
	return s.GetGenre(ctx, id)
}

func (s *Service) DisableGenre(ctx context.Context, id uint64) error {
	return s.store.DisableGenre(ctx, id)
}
