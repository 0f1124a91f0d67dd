package di

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-seed/cmd/seed/infrastructure"
	"user-seed/internal/adapter/cache"
	"user-seed/internal/adapter/db/postgres"
	"user-seed/internal/adapter/repository/cached"
	"user-seed/internal/config"
	"user-seed/internal/usecase/user"
	redisclient "user-seed/pkg/redis"
)

// Container is the open handle to the persistence layer: the database pool,
// the optional Redis cache and the user service built on top of them.
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Users       *user.Usecase

	closeOnce sync.Once
	closeErr  error
}

// NewContainer opens every dependency. On failure, whatever was already
// opened is closed before returning.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	return newContainer(cfg, l, db, rdb), nil
}

// newContainer wires repositories and the use case over open connections.
func newContainer(cfg *config.Config, l *zap.Logger, db *gorm.DB, rdb *redisclient.Client) *Container {
	var repo user.Repository = postgres.NewUserRepo(db, l)
	if rdb != nil {
		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewUserRepository(repo, userCache, l)
	}

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Users:       user.New(repo, l),
	}
}

// Close releases Redis and the database pool. Only the first call does any
// work; later calls return the first call's result.
func (c *Container) Close() error {
	c.closeOnce.Do(func() {
		var errs []error

		if c.RedisClient != nil {
			if err := c.RedisClient.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
			}
		}

		if c.DB != nil {
			if err := infrastructure.CloseDatabase(c.DB); err != nil {
				errs = append(errs, fmt.Errorf("failed to close database: %w", err))
			}
		}

		c.closeErr = errors.Join(errs...)
		c.Logger.Info("persistence handle released", zap.Bool("ok", c.closeErr == nil))
	})
	return c.closeErr
}
