package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskRowColumns = []string{
	"id", "title", "description", "assigned_to_id", "status", "due_date", "created_at", "updated_at",
}

func TestPostgresTaskStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("assigns id", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		desc := "quarterly numbers"
		task, err := domain.NewTask("Write report", &desc, 5, nil, "")
		require.NoError(t, err)

		mock.ExpectQuery(`INSERT INTO tasks`).
			WithArgs("Write report", "quarterly numbers", int64(5), "Pending", nil,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		require.NoError(t, s.Create(context.Background(), task))
		assert.Equal(t, int64(11), task.ID)
	})

	t.Run("unknown assignee maps to invalid entity", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		task, err := domain.NewTask("Orphan", nil, 404, nil, "")
		require.NoError(t, err)

		mock.ExpectQuery(`INSERT INTO tasks`).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

		err = s.Create(context.Background(), task)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	due := now.Add(48 * time.Hour)

	t.Run("found with nullable columns", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(int64(2), "Ship it", nil, int64(5), "In Progress", due, now, now))

		task, err := s.GetByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Nil(t, task.Description)
		require.NotNil(t, task.DueDate)
		assert.True(t, due.Equal(*task.DueDate))
		assert.Equal(t, domain.TaskStatusInProgress, task.Status)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(taskRowColumns))

		_, err := s.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_Lists(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(taskRowColumns).
			AddRow(int64(9), "Newer", nil, int64(5), "Pending", nil, now, now).
			AddRow(int64(4), "Older", "details", int64(5), "Completed", nil, now, now)
	}

	t.Run("all tasks newest first", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectQuery(`SELECT (.+) FROM tasks ORDER BY id DESC`).WillReturnRows(rows())

		tasks, err := s.List(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, int64(9), tasks[0].ID)
		require.NotNil(t, tasks[1].Description)
		assert.Equal(t, "details", *tasks[1].Description)
	})

	t.Run("by assignee", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE assigned_to_id = \$1 ORDER BY id DESC`).
			WithArgs(int64(5)).
			WillReturnRows(rows())

		tasks, err := s.ListByAssignee(context.Background(), 5)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE assigned_to_id = \$1`).
			WillReturnRows(sqlmock.NewRows(taskRowColumns))

		tasks, err := s.ListByAssignee(context.Background(), 8)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})
}

func TestBuildTaskUpdate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("only present fields are written", func(t *testing.T) {
		t.Parallel()
		patch := domain.TaskPatch{
			Title:  domain.Some("Renamed"),
			Status: domain.Some(domain.TaskStatusCompleted),
		}

		query, args := buildTaskUpdate(3, patch, now)

		assert.Equal(t,
			"UPDATE tasks SET title = $1, status = $2, updated_at = $3 WHERE id = $4 RETURNING "+taskColumns,
			query)
		assert.Equal(t, []any{"Renamed", "Completed", now, int64(3)}, args)
	})

	t.Run("null clears nullable columns", func(t *testing.T) {
		t.Parallel()
		patch := domain.TaskPatch{
			Description: domain.Null[string](),
			DueDate:     domain.Null[time.Time](),
		}

		query, args := buildTaskUpdate(3, patch, now)

		assert.Contains(t, query, "description = $1, due_date = $2, updated_at = $3 WHERE id = $4")
		require.Len(t, args, 4)
		assert.Nil(t, args[0].(*string))
		assert.Nil(t, args[1].(*time.Time))
	})

	t.Run("empty patch still stamps updated_at", func(t *testing.T) {
		t.Parallel()
		query, args := buildTaskUpdate(3, domain.TaskPatch{}, now)

		assert.Contains(t, query, "SET updated_at = $1 WHERE id = $2")
		assert.Equal(t, []any{now, int64(3)}, args)
	})
}

func TestPostgresTaskStore_Update(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("returns stored row", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectQuery(`UPDATE tasks SET title = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs("New title", sqlmock.AnyArg(), int64(6)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(int64(6), "New title", nil, int64(5), "Pending", nil, now, now))

		task, err := s.Update(context.Background(), 6, domain.TaskPatch{Title: domain.Some("New title")}, now)
		require.NoError(t, err)
		assert.Equal(t, "New title", task.Title)
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectQuery(`UPDATE tasks`).WillReturnRows(sqlmock.NewRows(taskRowColumns))

		_, err := s.Update(context.Background(), 6, domain.TaskPatch{Title: domain.Some("x")}, now)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("invalid patch is rejected before the query", func(t *testing.T) {
		t.Parallel()
		db, _ := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		_, err := s.Update(context.Background(), 6, domain.TaskPatch{Title: domain.Null[string]()}, now)
		assert.ErrorIs(t, err, domain.ErrNullNotAllowed)
	})
}

func TestPostgresTaskStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), 4))
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresTaskStore(db, nil, time.Second)

		mock.ExpectExec(`DELETE FROM tasks`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), 4), store.ErrTaskNotFound)
	})
}
