package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserService provides read access to users.
type UserService interface {
	// GetUser retrieves a user by ID or returns ErrNotFound.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// ListUsers returns all users in ascending ID order.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

type userServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	if userStore == nil || logger == nil {
		// ALLOW-PANIC: constructor invariant, wiring bug
		panic("NewUserService: missing required dependency")
	}
	return &userServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}
}

func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("get_user", "user not found", fmt.Errorf("%w: %w", ErrNotFound, err))
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
			"error", err,
			"user_id", id)
		return nil, NewServiceError("get_user", "could not load user", err)
	}
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users", "error", err)
		return nil, NewServiceError("list_users", "could not list users", err)
	}
	return users, nil
}
