package mocks

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// MockAuthService implements service.AuthService for handler tests.
type MockAuthService struct {
	RegisterFn      func(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	LoginFn         func(ctx context.Context, email, password string) (*service.LoginResult, error)
	ValidateTokenFn func(ctx context.Context, token string) (*domain.User, *auth.Claims, error)
	LogoutFn        func(ctx context.Context, claims *auth.Claims) error
}

var _ service.AuthService = (*MockAuthService)(nil)

// Register implements service.AuthService.
func (m *MockAuthService) Register(
	ctx context.Context,
	email, password string,
	role domain.Role,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, password, role)
	}
	return nil, nil
}

// Login implements service.AuthService.
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return nil, service.ErrUnauthorized
}

// ValidateToken implements service.AuthService.
func (m *MockAuthService) ValidateToken(
	ctx context.Context,
	token string,
) (*domain.User, *auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return nil, nil, service.ErrUnauthorized
}

// Logout implements service.AuthService.
func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, claims)
	}
	return nil
}

// MockTaskService implements service.TaskService for handler tests.
type MockTaskService struct {
	CreateTaskFn       func(ctx context.Context, input service.NewTaskInput) (*domain.Task, error)
	ListAllTasksFn     func(ctx context.Context) ([]*domain.Task, error)
	ListTasksForUserFn func(ctx context.Context, userID int64) ([]*domain.Task, error)
	GetTaskFn          func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTaskFn       func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	UpdateStatusFn     func(ctx context.Context, userID, taskID int64, status domain.TaskStatus) (*domain.Task, error)
	DeleteTaskFn       func(ctx context.Context, id int64) error
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements service.TaskService.
func (m *MockTaskService) CreateTask(ctx context.Context, input service.NewTaskInput) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return nil, nil
}

// ListAllTasks implements service.TaskService.
func (m *MockTaskService) ListAllTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListAllTasksFn != nil {
		return m.ListAllTasksFn(ctx)
	}
	return []*domain.Task{}, nil
}

// ListTasksForUser implements service.TaskService.
func (m *MockTaskService) ListTasksForUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	if m.ListTasksForUserFn != nil {
		return m.ListTasksForUserFn(ctx, userID)
	}
	return []*domain.Task{}, nil
}

// GetTask implements service.TaskService.
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, service.ErrNotFound
}

// UpdateTask implements service.TaskService.
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return nil, service.ErrNotFound
}

// UpdateStatus implements service.TaskService.
func (m *MockTaskService) UpdateStatus(
	ctx context.Context,
	userID, taskID int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, userID, taskID, status)
	}
	return nil, service.ErrNotFound
}

// DeleteTask implements service.TaskService.
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

// MockUserService implements service.UserService for handler tests.
type MockUserService struct {
	GetUserFn   func(ctx context.Context, id int64) (*domain.User, error)
	ListUsersFn func(ctx context.Context) ([]*domain.User, error)
}

var _ service.UserService = (*MockUserService)(nil)

// GetUser implements service.UserService.
func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, service.ErrNotFound
}

// ListUsers implements service.UserService.
func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return []*domain.User{}, nil
}
