package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("function failed")

	tests := []struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		fn        TxFn
		wantErrIs []error
		wantMsg   string
	}{
		{
			name: "commits on success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
			fn: func(context.Context, *sql.Tx) error { return nil },
		},
		{
			name: "rolls back when fn fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:        func(context.Context, *sql.Tx) error { return fnErr },
			wantErrIs: []error{fnErr},
		},
		{
			name: "begin failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
			},
			fn:        func(context.Context, *sql.Tx) error { return nil },
			wantErrIs: []error{sql.ErrConnDone},
			wantMsg:   "failed to begin transaction",
		},
		{
			name: "commit failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(sql.ErrTxDone)
			},
			fn:        func(context.Context, *sql.Tx) error { return nil },
			wantErrIs: []error{sql.ErrTxDone},
			wantMsg:   "failed to commit transaction",
		},
		{
			name: "rollback failure keeps both errors",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(sql.ErrTxDone)
			},
			fn:        func(context.Context, *sql.Tx) error { return fnErr },
			wantErrIs: []error{fnErr, sql.ErrTxDone},
			wantMsg:   "rollback failed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := RunInTransaction(context.Background(), db, tt.fn)

			if len(tt.wantErrIs) == 0 {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				for _, target := range tt.wantErrIs {
					assert.ErrorIs(t, err, target)
				}
				if tt.wantMsg != "" {
					assert.Contains(t, err.Error(), tt.wantMsg)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransaction_PanicRollsBackAndRepanics(t *testing.T) {
	t.Parallel()

	for _, rollbackErr := range []error{nil, sql.ErrTxDone} {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		if rollbackErr != nil {
			mock.ExpectRollback().WillReturnError(rollbackErr)
		} else {
			mock.ExpectRollback()
		}

		assert.PanicsWithValue(t, "boom", func() {
			_ = RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}
