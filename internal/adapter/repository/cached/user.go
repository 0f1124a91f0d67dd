package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-seed/internal/adapter/cache"
	domain "user-seed/internal/domain/user"
	"user-seed/internal/usecase/user"
)

// UserRepository decorates a persistent user.Repository with a record cache.
// Cache failures are logged and never fail the call.
type UserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository creates a cached repository over dbRepo.
func NewUserRepository(dbRepo user.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		dbRepo: dbRepo,
		cache:  c,
		log:    log,
	}
}

// Create stores the user and writes the stored record through to the cache.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	created, err := r.dbRepo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, created); err != nil {
		r.log.Warn("failed to cache created user", zap.Int64("id", created.ID), zap.Error(err))
	}
	return created, nil
}

// GetByID reads through the cache. Concurrent misses for the same ID share
// one database query.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	cached, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	result, err, shared := r.group.Do(cache.Key(id), func() (any, error) {
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(ctx, u); err != nil {
			r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.log.Debug("user lookup shared with concurrent caller", zap.Int64("id", id))
	}

	return result.(*domain.User), nil
}

// GetByEmail delegates to the DB repository.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// List delegates to the DB repository.
func (r *UserRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.User, int64, error) {
	return r.dbRepo.List(ctx, filter)
}
