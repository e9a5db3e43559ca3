package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const taskColumns = `id, title, description, assigned_to_id, status, due_date, created_at, updated_at`

// PostgresTaskStore implements store.TaskStore on PostgreSQL.
type PostgresTaskStore struct {
	db           store.DBTX
	logger       *slog.Logger
	queryTimeout time.Duration
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a task store over db. A nil logger falls back
// to slog.Default().
func NewPostgresTaskStore(
	db store.DBTX,
	logger *slog.Logger,
	queryTimeout time.Duration,
) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor invariant
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:           db,
		logger:       logger.With(slog.String("component", "task_store")),
		queryTimeout: queryTimeout,
	}
}

// WithTx returns a store bound to tx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger, queryTimeout: s.queryTimeout}
}

// Create inserts task and fills in its ID.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `
		INSERT INTO tasks (title, description, assigned_to_id, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.AssignedToID,
		string(task.Status),
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("assigned_to_id", task.AssignedToID))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("assigned_to_id", task.AssignedToID))
	return nil
}

// GetByID fetches a task by primary key.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get_by_id", "query failed", MapError(err))
	}
	return task, nil
}

// List returns every task, newest first.
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.list(ctx, "list", `SELECT `+taskColumns+` FROM tasks ORDER BY id DESC`)
}

// ListByAssignee returns the tasks assigned to userID, newest first.
func (s *PostgresTaskStore) ListByAssignee(ctx context.Context, userID int64) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to_id = $1 ORDER BY id DESC`
	return s.list(ctx, "list_by_assignee", query, userID)
}

func (s *PostgresTaskStore) list(
	ctx context.Context,
	op string,
	query string,
	args ...any,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", op, "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", op, "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", op, "row iteration failed", err)
	}
	return tasks, nil
}

// Update writes only the columns present in patch, plus updated_at, and
// returns the stored row.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
	now time.Time,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	query, args := buildTaskUpdate(id, patch, now)

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	log.Debug("task updated", slog.Int64("task_id", id))
	return task, nil
}

// buildTaskUpdate renders an UPDATE touching only the set fields of patch.
// Null description or due date clears the column.
func buildTaskUpdate(id int64, patch domain.TaskPatch, now time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title.Set {
		add("title", patch.Title.Value)
	}
	if patch.Description.Set {
		add("description", patch.Description.Ptr())
	}
	if patch.AssignedToID.Set {
		add("assigned_to_id", patch.AssignedToID.Value)
	}
	if patch.Status.Set {
		add("status", string(patch.Status.Value))
	}
	if patch.DueDate.Set {
		add("due_date", patch.DueDate.Ptr())
	}
	add("updated_at", now)

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "),
		len(args),
		taskColumns,
	)
	return query, args
}

// Delete removes a task.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task   domain.Task
		status string
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.AssignedToID,
		&status,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	return &task, nil
}
