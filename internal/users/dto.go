package users

import (
	"time"

	"library-backend/internal/platform/paging"
)

type CreateUserRequest struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     *string  `json:"email,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	RoleType  RoleType `json:"roleType,omitempty"`
}

type ListQuery struct {
	Filter UserFilter
	Page   paging.Request
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID              string          `json:"id"`
	Username        string          `json:"username"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Email           *string         `json:"email,omitempty"`
	Phone           *string         `json:"phone,omitempty"`
	ModerationState ModerationState `json:"moderationState"`
	UserState       UserState       `json:"userState"`
	RoleType        RoleType        `json:"roleType"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toResponse(u *User) UserResponse {
	r := UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ModerationState: u.ModerationState,
		UserState:       u.UserState,
		RoleType:        u.RoleType,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.Email.Valid {
		v := u.Email.String
		r.Email = &v
	}
	if u.Phone.Valid {
		v := u.Phone.String
		r.Phone = &v
	}
	return r
}
