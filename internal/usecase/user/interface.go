package user

import "context"

// Service is the user client surface: create one record, read records back.
type Service interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*User, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	GetUser(ctx context.Context, id int64) (*User, error)
}
