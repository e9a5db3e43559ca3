//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryTimeout = 2 * time.Second

func createUser(t *testing.T, users store.UserStore, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser(uuid.NewString()+"@example.com", "hashed", role)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func TestUserStoreIntegration(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, nil, queryTimeout)

		user := createUser(t, users, domain.RoleEmployee)

		byEmail, err := users.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, domain.RoleEmployee, byEmail.Role)

		dup, err := domain.NewUser(user.Email, "other", domain.RoleAdmin)
		require.NoError(t, err)
		assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)

		_, err = users.GetByID(ctx, user.ID+1_000_000)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestTaskStoreIntegration(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, nil, queryTimeout)
		tasks := postgres.NewPostgresTaskStore(tx, nil, queryTimeout)

		employee := createUser(t, users, domain.RoleEmployee)
		description := "quarterly numbers"
		task, err := domain.NewTask("Write report", &description, employee.ID, nil, "")
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, task))
		require.NotZero(t, task.ID)

		mine, err := tasks.ListByAssignee(ctx, employee.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, task.ID, mine[0].ID)

		updated, err := tasks.Update(ctx, task.ID, domain.TaskPatch{
			Status:      domain.Some(domain.TaskStatusCompleted),
			Description: domain.Null[string](),
		}, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
		assert.Nil(t, updated.Description)
		assert.Equal(t, "Write report", updated.Title)

		require.NoError(t, tasks.Delete(ctx, task.ID))
		_, err = tasks.GetByID(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, tasks.Delete(ctx, task.ID), store.ErrTaskNotFound)
	})
}

func TestTaskStoreIntegrationRejectsUnknownAssignee(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		tasks := postgres.NewPostgresTaskStore(tx, nil, queryTimeout)

		task, err := domain.NewTask("Orphan", nil, 987654321, nil, "")
		require.NoError(t, err)
		assert.ErrorIs(t, tasks.Create(context.Background(), task), store.ErrInvalidEntity)
	})
}
