package users

import (
	"database/sql"
	"time"
)

type ModerationState string

const (
	NotModerated ModerationState = "NOT_MODERATED"
	Approved     ModerationState = "APPROVED"
	Blocked      ModerationState = "BLOCKED"
)

type UserState string

const (
	Active    UserState = "ACTIVE"
	Inactive  UserState = "INACTIVE"
	Suspended UserState = "SUSPENDED"
)

type RoleType string

const (
	Reader    RoleType = "READER"
	Librarian RoleType = "LIBRARIAN"
	Admin     RoleType = "ADMIN"
)

var (
	moderationStates = []ModerationState{NotModerated, Approved, Blocked}
	userStates       = []UserState{Active, Inactive, Suspended}
	roleTypes        = []RoleType{Reader, Librarian, Admin}
)

// parseEnum は保存値と完全一致（大文字小文字を区別）したときだけ ok。
func parseEnum[T ~string](s string, allowed []T) (T, bool) {
	for _, v := range allowed {
		if string(v) == s {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func ParseModerationState(s string) (ModerationState, bool) { return parseEnum(s, moderationStates) }
func ParseUserState(s string) (UserState, bool)             { return parseEnum(s, userStates) }
func ParseRoleType(s string) (RoleType, bool)               { return parseEnum(s, roleTypes) }

type User struct {
	ID              string          `db:"id"`
	Username        string          `db:"username"`
	FirstName       string          `db:"first_name"`
	LastName        string          `db:"last_name"`
	Email           sql.NullString  `db:"email"`
	Phone           sql.NullString  `db:"phone"`
	ModerationState ModerationState `db:"moderation_state"`
	UserState       UserState       `db:"user_state"`
	RoleType        RoleType        `db:"role_type"`
	PasswordHash    string          `db:"password_hash"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// UserFilter: nil / 空文字は条件なし
type UserFilter struct {
	ID              *string
	Username        *string // 部分一致（大文字小文字無視）
	ModerationState *ModerationState
	UserState       *UserState
	RoleType        *RoleType
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
