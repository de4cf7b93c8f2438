package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/users"
)

var ErrInvalidCredentials = errors.New("authentication failed")

type Service struct {
	store  AccountStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(store AccountStore, secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{store: store, secret: secret, ttl: ttl, now: time.Now}
}

// Login verifies the password and issues an HS256 token carrying sub and role.
// Unknown users, wrong passwords and disabled accounts look the same to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	acct, err := s.store.GetByUsername(ctx, users.NormalizeUsername(username))
	if err != nil {
		return "", err
	}
	if acct == nil || !acct.CanLogin() {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  acct.ID,
		"role": acct.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}
