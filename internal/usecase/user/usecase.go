package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-seed/internal/domain/user"
	apperrors "user-seed/pkg/errors"
	"user-seed/pkg/logger"
)

// MaxPageSize caps ListUsersRequest.Limit.
const MaxPageSize = 100

// Repository defines the data access operations the use case needs.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // nil, nil when absent
	List(ctx context.Context, filter domain.ListFilter) ([]domain.User, int64, error)
}

// Usecase implements Service on top of a Repository.
type Usecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

var _ Service = (*Usecase)(nil)

// New creates a Usecase.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a single
// ValidationError with one message per failed field.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return apperrors.NewValidationError("", strings.Join(messages, ", "))
}

// CreateUser validates the payload, rejects a taken email and stores the user.
// The returned record carries the ID and timestamps assigned on insert.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("existing_id", existing.ID))
		return nil, apperrors.NewAlreadyExistsError("user", "email already exists")
	}

	created, err := uc.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	return fromDomain(created), nil
}

// ListUsers returns users ordered by ID. With a zero request it returns all
// of them; Limit turns on paging with Page defaulting to 1.
func (uc *Usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	filter := domain.ListFilter{Query: in.Query}
	if in.Limit > 0 {
		filter.Limit = min(in.Limit, MaxPageSize)
		filter.Page = max(in.Page, 1)
	}

	log := logger.WithContext(ctx, uc.log)
	log.Info("listing users", zap.String("query", filter.Query), zap.Int64("page", filter.Page), zap.Int64("limit", filter.Limit))

	domainUsers, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		if apperrors.IsValidation(err) {
			log.Warn("invalid list request", zap.String("query", in.Query), zap.Error(err))
			return nil, err
		}
		log.Error("failed to list users", zap.String("query", in.Query), zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = *fromDomain(&domainUsers[i])
	}

	return &ListUsersResponse{
		Users: users,
		Total: total,
	}, nil
}

// GetUser returns a single user by ID.
func (uc *Usecase) GetUser(ctx context.Context, id int64) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	if id <= 0 {
		log.Warn("get user validation failed", zap.Int64("id", id), zap.String("reason", "invalid id"))
		return nil, apperrors.NewValidationError("id", "invalid user id")
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return fromDomain(u), nil
}
