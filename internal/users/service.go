package users

import (
	"context"
	"crypto/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

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

const (
	minPasswordLen = 8
	maxUsernameLen = 64
)

type Repository interface {
	Insert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, f UserFilter, w paging.Window) ([]User, int64, error)
}

type Service struct {
	store Repository
	clock Clock
	id    IDGen
	cost  int
}

func NewService(store Repository) *Service {
	return &Service{store: store, clock: realClock{}, id: ulidGen{}, cost: bcrypt.DefaultCost}
}

// NormalizeUsername は NFC に揃えて前後空白を除く。見た目が同じ名前の重複登録を防ぐ。
func NormalizeUsername(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*UserResponse, error) {
	username := NormalizeUsername(in.Username)
	switch {
	case username == "":
		return nil, apperr.ErrMissing("username")
	case in.Password == "":
		return nil, apperr.ErrMissing("password")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, apperr.ErrInvalid("username is too long")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.ErrInvalid("password must be at least 8 characters")
	}

	role := Reader
	if in.RoleType != "" {
		r, ok := ParseRoleType(string(in.RoleType))
		if !ok {
			return nil, apperr.ErrInvalid("unknown roleType " + string(in.RoleType))
		}
		role = r
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, err
	}
	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	u := &User{
		ID:              id,
		Username:        username,
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		ModerationState: NotModerated,
		UserState:       Active,
		RoleType:        role,
		PasswordHash:    string(hash),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		u.Email.String, u.Email.Valid = strings.TrimSpace(*in.Email), true
	}
	if in.Phone != nil && strings.TrimSpace(*in.Phone) != "" {
		u.Phone.String, u.Phone.Valid = strings.TrimSpace(*in.Phone), true
	}

	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}
	out := toResponse(u)
	return &out, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	if id == "" {
		return nil, apperr.ErrMissing("id")
	}
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toResponse(u)
	return &out, nil
}

func (s *Service) ListUsers(ctx context.Context, q ListQuery) (paging.Page[UserResponse], error) {
	f := q.Filter
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedFrom.After(*f.CreatedTo) {
		return paging.Page[UserResponse]{}, apperr.ErrInvalid("startDate must not be after endDate")
	}
	if f.Username != nil {
		v := NormalizeUsername(*f.Username)
		f.Username = &v
	}
	w := paging.Translate(q.Page, UserSort)
	rows, total, err := s.store.List(ctx, f, w)
	if err != nil {
		return paging.Page[UserResponse]{}, err
	}
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return paging.NewPage(w, total, out), nil
}
