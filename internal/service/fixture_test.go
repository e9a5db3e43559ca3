package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "service-test-secret-that-is-long-enough"

// fixture wires the services over in-memory stores. Transactions run against
// sqlmock, so each test declares how many commits and rollbacks it expects.
type fixture struct {
	users    *mocks.MockUserStore
	tasks    *mocks.MockTaskStore
	notifier *mocks.MockNotifier
	revoker  *mocks.MockRevoker
	db       sqlmock.Sqlmock

	auth  service.AuthService
	task  service.TaskService
	user  service.UserService
	jwt   auth.JWTService
	quiet *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 30,
	})
	require.NoError(t, err)

	f := &fixture{
		users:    mocks.NewMockUserStore(),
		tasks:    mocks.NewMockTaskStore(),
		notifier: &mocks.MockNotifier{},
		revoker:  &mocks.MockRevoker{},
		db:       mock,
		jwt:      jwtService,
		quiet:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	f.auth = service.NewAuthService(f.users, db, &mocks.MockPasswordHasher{}, jwtService, f.revoker, f.quiet)
	f.task = service.NewTaskService(f.tasks, f.users, db, f.notifier, f.quiet)
	f.user = service.NewUserService(f.users, f.quiet)
	return f
}

// commits expects n transactions that commit.
func (f *fixture) commits(n int) {
	for i := 0; i < n; i++ {
		f.db.ExpectBegin()
		f.db.ExpectCommit()
	}
}

// rollback expects one transaction that rolls back.
func (f *fixture) rollback() {
	f.db.ExpectBegin()
	f.db.ExpectRollback()
}

// seedUser stores a user directly and returns it.
func (f *fixture) seedUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email, "hashed:password", role)
	require.NoError(t, err)
	f.users.Seed(u)
	return u
}
