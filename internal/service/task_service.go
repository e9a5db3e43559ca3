package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// AssignmentNotifier is told when a task is assigned to an employee.
type AssignmentNotifier interface {
	TaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task) error
}

// NewTaskInput carries the fields of a task to create.
type NewTaskInput struct {
	Title        string
	Description  *string
	AssignedToID int64
	DueDate      *time.Time
	Status       domain.TaskStatus
}

// TaskService manages tasks and their assignment.
type TaskService interface {
	// CreateTask stores a new task. The assignee must be an existing EMPLOYEE,
	// otherwise ErrNotFound is returned.
	CreateTask(ctx context.Context, input NewTaskInput) (*domain.Task, error)

	// ListAllTasks returns every task, newest first.
	ListAllTasks(ctx context.Context) ([]*domain.Task, error)

	// ListTasksForUser returns the tasks assigned to userID, newest first.
	ListTasksForUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// GetTask returns a task or ErrNotFound.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask applies a partial update. A present assignee is checked as in
	// CreateTask.
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// UpdateStatus sets the status of a task owned by userID. Tasks that do
	// not exist and tasks owned by someone else both yield ErrNotFound.
	UpdateStatus(ctx context.Context, userID, taskID int64, status domain.TaskStatus) (*domain.Task, error)

	// DeleteTask removes a task or returns ErrNotFound.
	DeleteTask(ctx context.Context, id int64) error
}

type taskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	db        *sql.DB
	notifier  AssignmentNotifier
	logger    *slog.Logger
	now       func() time.Time
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a TaskService. notifier may be nil.
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	db *sql.DB,
	notifier AssignmentNotifier,
	logger *slog.Logger,
) TaskService {
	if taskStore == nil || userStore == nil || db == nil || logger == nil {
		// ALLOW-PANIC: constructor invariant, wiring bug
		panic("NewTaskService: missing required dependency")
	}
	return &taskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		db:        db,
		notifier:  notifier,
		logger:    logger.With("component", "task_service"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, input NewTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(input.Title, input.Description, input.AssignedToID, input.DueDate, input.Status)
	if err != nil {
		return nil, err
	}
	now := s.now()
	task.CreatedAt, task.UpdatedAt = now, now

	var assignee *domain.User
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		assignee, err = loadAssignee(ctx, s.userStore.WithTx(tx), task.AssignedToID)
		if err != nil {
			return err
		}
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		return nil, s.fail(log, "create_task", "could not create task", err)
	}

	log.Info("task created", "task_id", task.ID, "assigned_to_id", task.AssignedToID)
	s.notify(ctx, assignee, task)
	return task, nil
}

func (s *taskServiceImpl) ListAllTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		return nil, s.fail(logger.FromContextOrDefault(ctx, s.logger), "list_tasks", "could not list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) ListTasksForUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, s.fail(logger.FromContextOrDefault(ctx, s.logger), "list_user_tasks", "could not list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(logger.FromContextOrDefault(ctx, s.logger), "get_task", "could not get task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var (
		updated    *domain.Task
		reassigned *domain.User
	)
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)

		existing, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.AssignedToID.HasValue() {
			assignee, err := loadAssignee(ctx, s.userStore.WithTx(tx), patch.AssignedToID.Value)
			if err != nil {
				return err
			}
			if assignee.ID != existing.AssignedToID {
				reassigned = assignee
			}
		}

		updated, err = tasks.Update(ctx, id, patch, s.now())
		return err
	})
	if err != nil {
		return nil, s.fail(log, "update_task", "could not update task", err)
	}

	log.Info("task updated", "task_id", id)
	if reassigned != nil {
		s.notify(ctx, reassigned, updated)
	}
	return updated, nil
}

func (s *taskServiceImpl) UpdateStatus(
	ctx context.Context,
	userID, taskID int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	patch := domain.TaskPatch{Status: domain.Some(status)}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)

		task, err := tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.AssignedToID != userID {
			log.Debug("status update on task owned by another user",
				"task_id", taskID, "user_id", userID)
			return store.ErrTaskNotFound
		}

		updated, err = tasks.Update(ctx, taskID, patch, s.now())
		return err
	})
	if err != nil {
		return nil, s.fail(log, "update_status", "could not update status", err)
	}

	log.Info("task status updated", "task_id", taskID, "status", status)
	return updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.Delete(ctx, id); err != nil {
		return s.fail(log, "delete_task", "could not delete task", err)
	}
	log.Info("task deleted", "task_id", id)
	return nil
}

// ErrInvalidAssignee is returned when an assignee is missing or not an
// EMPLOYEE. It matches ErrNotFound after service wrapping.
var ErrInvalidAssignee = fmt.Errorf("%w: assignee must be an existing employee", store.ErrNotFound)

// loadAssignee returns the user behind id if it is an EMPLOYEE.
func loadAssignee(ctx context.Context, users store.UserStore, id int64) (*domain.User, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidAssignee
		}
		return nil, err
	}
	if user.Role != domain.RoleEmployee {
		return nil, ErrInvalidAssignee
	}
	return user, nil
}

// fail converts store and domain errors into the service taxonomy.
func (s *taskServiceImpl) fail(log *slog.Logger, op, msg string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return err
	case store.IsNotFoundError(err):
		log.Debug("task workflow target not found", "operation", op, "error", err)
		return NewServiceError(op, msg, fmt.Errorf("%w: %w", ErrNotFound, err))
	default:
		log.Error("task workflow failed", "operation", op, "error", err)
		return NewServiceError(op, msg, err)
	}
}

// notify reports an assignment without failing the caller.
func (s *taskServiceImpl) notify(ctx context.Context, assignee *domain.User, task *domain.Task) {
	if s.notifier == nil || assignee == nil {
		return
	}
	if err := s.notifier.TaskAssigned(ctx, assignee, task); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("assignment notification failed",
			"error", err,
			"task_id", task.ID,
			"assignee_id", assignee.ID)
	}
}
