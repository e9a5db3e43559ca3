package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task and fills in its ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns all tasks, most recently created first (descending ID).
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByAssignee returns the tasks assigned to userID, descending ID.
	ListByAssignee(ctx context.Context, userID int64) ([]*domain.Task, error)

	// Update writes the present fields of patch and sets updated_at to now in
	// a single statement, returning the resulting row.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, patch domain.TaskPatch, now time.Time) (*domain.Task, error)

	// Delete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
