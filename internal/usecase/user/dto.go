package user

import (
	"time"

	domain "user-seed/internal/domain/user"
)

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Name  string `validate:"required,min=3,max=100"`
	Email string `validate:"required,email"`
}

// ListUsersRequest narrows a listing. The zero value lists every user.
type ListUsersRequest struct {
	Query string
	Page  int64
	Limit int64 // 0 disables paging
}

// ListUsersResponse is the result of a listing.
type ListUsersResponse struct {
	Users []User
	Total int64
}

// User is the record returned to callers.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func fromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
