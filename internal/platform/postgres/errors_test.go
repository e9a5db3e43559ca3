package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantMsg string
	}{
		{name: "nil", err: nil},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{
			name:    "unique violation",
			err:     &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"},
			wantIs:  store.ErrDuplicate,
			wantMsg: "users_email_key",
		},
		{
			name:    "foreign key violation",
			err:     &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_assigned_to_id_fkey"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "foreign key violation",
		},
		{
			name:    "check violation",
			err:     &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_status_check"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "tasks_status_check",
		},
		{
			name:    "not null violation",
			err:     &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "title",
		},
		{name: "unmapped pg error", err: &pgconn.PgError{Code: "42P01"}},
		{name: "plain error", err: plain, wantIs: plain},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			require.Error(t, got)
			if tt.wantIs != nil {
				assert.ErrorIs(t, got, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, got.Error(), tt.wantMsg)
			}
		})
	}
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: uniqueViolationCode}
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("other")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrTaskNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound), store.ErrTaskNotFound)

	resultErr := errors.New("driver does not support RowsAffected")
	err := CheckRowsAffected(sqlmock.NewErrorResult(resultErr), store.ErrTaskNotFound)
	assert.ErrorIs(t, err, resultErr)

	assert.Error(t, CheckRowsAffected(nil, store.ErrTaskNotFound))
}
