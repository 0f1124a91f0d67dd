// Package seed runs the create-then-list sequence against a user Service.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"user-seed/internal/usecase/user"
	"user-seed/pkg/logger"
)

// Result holds what a successful run produced.
type Result struct {
	Created *user.User
	All     []user.User
}

// Run creates payload, logs the stored record, then lists every user and
// logs the collection. A failed create skips the listing.
func Run(ctx context.Context, users user.Service, payload user.CreateUserRequest, log *zap.Logger) (*Result, error) {
	ctx, runID := logger.WithRunID(ctx)
	log = log.With(zap.String("run_id", runID))

	created, err := users.CreateUser(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	log.Info("user created", zap.Any("user", created))

	all, err := users.ListUsers(ctx, user.ListUsersRequest{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	log.Info("all users", zap.Int64("count", all.Total), zap.Any("users", all.Users))

	return &Result{Created: created, All: all.Users}, nil
}
