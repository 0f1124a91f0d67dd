package user

import "time"

// User represents a user record as stored by the persistence layer.
type User struct {
	ID        int64     `json:"id"`         // ID is assigned by the database on insert
	Name      string    `json:"name"`       // Name is the display name of the user
	Email     string    `json:"email"`      // Email is unique across all users
	CreatedAt time.Time `json:"created_at"` // CreatedAt is set by the database on insert
	UpdatedAt time.Time `json:"updated_at"` // UpdatedAt is refreshed on every write
}
